package game

import "fmt"

// GameState is one match. All mutation goes through SelectStack, MakeMove
// and ToggleStand; a rejected intent leaves the state untouched.
type GameState struct {
	BoardSize     int       `json:"boardSize"`
	Tiles         Board     `json:"tiles"`
	Pieces        Registry  `json:"pieces"`
	CurrentPlayer Color     `json:"currentPlayer"`
	RoundNumber   int       `json:"roundNumber"`
	GameStarted   bool      `json:"gameStarted"`
	GameOver      bool      `json:"gameOver"`
	Winner        *Result   `json:"winner"`
	Flatstones    FlatCount `json:"flatstones"`
	SelectedStack []Piece   `json:"selectedStack"`
	History       History   `json:"history"`

	// committed direction of the stack move in progress; nil until the
	// first placement of the turn
	direction *Position
	moves     int
}

func NewGameState(size int) (*GameState, error) {
	reg, err := NewRegistry(size)
	if err != nil {
		return nil, err
	}
	return &GameState{
		BoardSize:     size,
		Tiles:         NewBoard(size),
		Pieces:        reg,
		CurrentPlayer: White,
		RoundNumber:   1,
		SelectedStack: []Piece{},
		History:       History{},
	}, nil
}

func (g *GameState) Start() { g.GameStarted = true }

func (g *GameState) Pause() { g.GameStarted = false }

// Moves counts accepted placements.
func (g *GameState) Moves() int { return g.moves }

func (g *GameState) checkTurn(actor Color) error {
	switch {
	case g.GameOver:
		return ErrGameOver
	case !g.GameStarted:
		return ErrGameNotStarted
	case actor != g.CurrentPlayer:
		return ErrNotYourTurn
	}
	return nil
}

func (g *GameState) allowedDirections() []Position {
	if g.direction == nil {
		return AllDirections()
	}
	if *g.direction == Stay {
		return []Position{Stay}
	}
	return []Position{*g.direction, Stay}
}

// SelectStack picks up ids, bottom first. Reserve selections are a single
// piece; board selections must be a run ending at the top of one tile.
func (g *GameState) SelectStack(actor Color, ids []string) error {
	if err := g.checkTurn(actor); err != nil {
		return err
	}
	if g.direction != nil {
		return ErrSelectionInProgress
	}
	if len(ids) == 0 {
		return ErrIllegalSelection
	}
	first := g.Pieces.Get(ids[0])
	if first == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPiece, ids[0])
	}

	if g.Tiles.IsOnBoard(first.ID) {
		if g.RoundNumber == 1 {
			return fmt.Errorf("%w: opening turns place from reserve", ErrIllegalSelection)
		}
		if _, err := SelectionFromTile(ids, g.Tiles, g.Pieces, g.CurrentPlayer); err != nil {
			return err
		}
	} else {
		if len(ids) != 1 {
			return fmt.Errorf("%w: reserve pieces are picked one at a time", ErrIllegalSelection)
		}
		if err := CanSelectReserve(*first, g.CurrentPlayer, g.RoundNumber); err != nil {
			return err
		}
	}

	sel := make([]Piece, 0, len(ids))
	for _, id := range ids {
		p := g.Pieces.Get(id)
		if p == nil {
			return fmt.Errorf("%w: %q", ErrUnknownPiece, id)
		}
		sel = append(sel, *p)
	}
	g.dropReserveSelection(sel[0].ID)
	g.SelectedStack = sel
	return nil
}

// dropReserveSelection lays an abandoned reserve stone flat again when the
// selection moves to another piece.
func (g *GameState) dropReserveSelection(next string) {
	if len(g.SelectedStack) != 1 {
		return
	}
	id := g.SelectedStack[0].ID
	if id == next || g.Tiles.IsOnBoard(id) {
		return
	}
	if p := g.Pieces.Get(id); p != nil && p.Type == Standingstone {
		p.Type = Flatstone
	}
}

// ToggleStand flips the selected reserve stone between flat and standing.
func (g *GameState) ToggleStand(actor Color, id string) error {
	if err := g.checkTurn(actor); err != nil {
		return err
	}
	if g.RoundNumber == 1 {
		return ErrIllegalToggle
	}
	if len(g.SelectedStack) != 1 || g.SelectedStack[0].ID != id || g.Tiles.IsOnBoard(id) {
		return ErrIllegalToggle
	}
	p := g.Pieces.Get(id)
	if p == nil {
		return ErrUnknownPiece
	}
	switch p.Type {
	case Flatstone:
		p.Type = Standingstone
	case Standingstone:
		p.Type = Flatstone
	default:
		return ErrIllegalToggle
	}
	g.SelectedStack[0] = *p
	return nil
}

// LegalDestinations lists where the current selection may drop next.
func (g *GameState) LegalDestinations() []Position {
	if len(g.SelectedStack) == 0 {
		return nil
	}
	return CalculateMoves(g.SelectedStack[0].ID, g.Tiles, g.Pieces, g.allowedDirections())
}

// MakeMove drops the bottom piece of the selection on mv.To, carrying the
// rest of the selection along with it.
func (g *GameState) MakeMove(actor Color, mv Move) error {
	if err := g.checkTurn(actor); err != nil {
		return err
	}
	if len(g.SelectedStack) == 0 {
		return ErrNoSelection
	}
	if !sameStack(mv.Stack, g.SelectedStack) {
		return fmt.Errorf("%w: stack does not match selection", ErrIllegalMove)
	}

	bottomID := g.SelectedStack[0].ID
	origin := g.Tiles.TileOfPiece(bottomID)
	switch {
	case origin == nil && mv.From != nil:
		return fmt.Errorf("%w: reserve piece has no origin", ErrIllegalMove)
	case origin != nil && (mv.From == nil || *mv.From != origin.Position):
		return fmt.Errorf("%w: origin mismatch", ErrIllegalMove)
	}
	if !containsPosition(CalculateMoves(bottomID, g.Tiles, g.Pieces, g.allowedDirections()), mv.To) {
		return fmt.Errorf("%w: %d,%d not reachable", ErrIllegalMove, mv.To.X, mv.To.Y)
	}
	dest := g.Tiles.TileAt(mv.To)
	if dest == nil {
		return ErrIllegalMove
	}

	g.History.Append(g.Tiles, g.Pieces)

	if origin == nil {
		dest.Pieces = append(dest.Pieces, bottomID)
	} else if dest != origin {
		ids := stackIDs(g.SelectedStack)
		origin.Pieces = without(origin.Pieces, ids)
		if bottom := g.Pieces.Get(bottomID); bottom != nil && bottom.Type == Capstone {
			if top := g.Pieces.topPiece(dest); top != nil && top.Type == Standingstone {
				top.Type = Flatstone
			}
		}
		dest.Pieces = append(dest.Pieces, ids...)
		if g.direction == nil {
			d := mv.To.Sub(origin.Position)
			g.direction = &d
		}
	} else if g.direction == nil {
		d := Stay
		g.direction = &d
	}

	g.SelectedStack = g.SelectedStack[1:]
	if len(g.SelectedStack) == 0 {
		g.SelectedStack = []Piece{}
	}
	g.moves++
	g.Flatstones = Flatstones(g.Tiles, g.Pieces)

	if res, over := Outcome(g.Tiles, g.Pieces, g.CurrentPlayer); over {
		g.GameOver = true
		g.Winner = &res
		return nil
	}
	if len(g.SelectedStack) == 0 {
		g.advanceTurn()
	}
	return nil
}

func (g *GameState) advanceTurn() {
	if g.CurrentPlayer == Black {
		g.RoundNumber++
	}
	g.CurrentPlayer = g.CurrentPlayer.Opponent()
	g.direction = nil
}

// Clone returns a deep copy safe to hand to another goroutine.
func (g *GameState) Clone() *GameState {
	out := *g
	out.Tiles = g.Tiles.Clone()
	out.Pieces = g.Pieces.Clone()
	out.SelectedStack = append([]Piece{}, g.SelectedStack...)
	out.History = g.History.clone()
	if g.Winner != nil {
		w := *g.Winner
		out.Winner = &w
	}
	if g.direction != nil {
		d := *g.direction
		out.direction = &d
	}
	return &out
}

func sameStack(a, b []Piece) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func stackIDs(ps []Piece) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func without(ids, drop []string) []string {
	skip := make(map[string]struct{}, len(drop))
	for _, id := range drop {
		skip[id] = struct{}{}
	}
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
