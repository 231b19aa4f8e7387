package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tak-online/internal/config"
	"tak-online/internal/game"
)

// Hot-seat Tak in the terminal, driving the same engine the server uses.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g, err := game.NewGameState(cfg.BoardSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g.Start()

	reader := bufio.NewReader(os.Stdin)
	for !g.GameOver {
		fmt.Printf("\nRound %d, %s to play\n", g.RoundNumber, g.CurrentPlayer)
		render(os.Stdout, g)
		if len(g.SelectedStack) > 0 {
			fmt.Printf("Carrying: %s\n", describeStack(g.SelectedStack))
		}
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr, err)
			}
			return
		}
		if quit := command(os.Stdout, g, strings.Fields(line)); quit {
			return
		}
	}

	fmt.Printf("\nGame over: %s (flats white %d, black %d)\n", *g.Winner, g.Flatstones.White, g.Flatstones.Black)
	js, _ := json.MarshalIndent(g.Flatstones, "", "  ")
	fmt.Println(string(js))
}

const help = `commands:
  select ID [ID...]   pick up a reserve piece or a stack (bottom first)
  stand ID            toggle the selected reserve stone flat/standing
  move X Y            drop the bottom selected piece on X,Y
  moves               list legal destinations
  reserve             list your reserve
  quit`

// command runs one line of input and reports whether to quit.
func command(w io.Writer, g *game.GameState, args []string) bool {
	if len(args) == 0 {
		return false
	}
	var err error
	switch args[0] {
	case "select", "s":
		err = g.SelectStack(g.CurrentPlayer, args[1:])
	case "stand":
		if len(args) != 2 {
			err = errors.New("usage: stand ID")
			break
		}
		err = g.ToggleStand(g.CurrentPlayer, args[1])
	case "move", "m":
		err = move(g, args[1:])
	case "moves":
		fmt.Fprintln(w, g.LegalDestinations())
	case "reserve":
		owner := g.CurrentPlayer
		if g.RoundNumber == 1 {
			owner = owner.Opponent()
		}
		fmt.Fprintln(w, describeStack(g.Pieces.InReserve(g.Tiles, owner)))
	case "quit", "q":
		return true
	default:
		fmt.Fprintln(w, help)
	}
	if err != nil {
		fmt.Fprintln(w, "rejected:", err)
	}
	return false
}

func move(g *game.GameState, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: move X Y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	if len(g.SelectedStack) == 0 {
		return game.ErrNoSelection
	}
	mv := game.Move{Stack: g.SelectedStack, To: game.Position{X: x, Y: y}}
	if t := g.Tiles.TileOfPiece(g.SelectedStack[0].ID); t != nil {
		from := t.Position
		mv.From = &from
	}
	return g.MakeMove(g.CurrentPlayer, mv)
}

// render prints the board with y growing downwards. Each cell shows the top
// piece (upper case white, lower case black) and the stack height.
func render(w io.Writer, g *game.GameState) {
	size := g.BoardSize
	fmt.Fprint(w, "   ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(w, " %-3d", x)
	}
	fmt.Fprintln(w)
	for y := 0; y < size; y++ {
		fmt.Fprintf(w, "%2d ", y)
		for x := 0; x < size; x++ {
			t := g.Tiles.TileAt(game.Position{X: x, Y: y})
			top := g.Pieces.Get(t.Top())
			if top == nil {
				fmt.Fprint(w, " .  ")
				continue
			}
			fmt.Fprintf(w, " %s%-2d", symbol(*top), len(t.Pieces))
		}
		fmt.Fprintln(w)
	}
}

func symbol(p game.Piece) string {
	s := "F"
	switch p.Type {
	case game.Standingstone:
		s = "S"
	case game.Capstone:
		s = "C"
	}
	if p.Color == game.Black {
		s = strings.ToLower(s)
	}
	return s
}

func describeStack(ps []game.Piece) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.ID + symbol(p)
	}
	return strings.Join(parts, " ")
}
