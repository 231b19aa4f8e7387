package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedGame(t *testing.T) *GameState {
	t.Helper()
	g, err := NewGameState(5)
	require.NoError(t, err)
	g.Start()
	return g
}

func put(g *GameState, p Position, ids ...string) {
	tile := g.Tiles.TileAt(p)
	tile.Pieces = append(tile.Pieces, ids...)
}

func pieces(g *GameState, ids ...string) []Piece {
	out := make([]Piece, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.Pieces.Get(id))
	}
	return out
}

func at(x, y int) *Position { return &Position{X: x, Y: y} }

func TestNewGameState(t *testing.T) {
	g, err := NewGameState(5)
	require.NoError(t, err)

	assert.Equal(t, White, g.CurrentPlayer)
	assert.Equal(t, 1, g.RoundNumber)
	assert.Len(t, g.Tiles, 25)
	assert.Len(t, g.Pieces, 44)
	assert.True(t, g.Tiles.IsEmptyBoard())
	assert.Empty(t, g.SelectedStack)
	assert.Nil(t, g.Winner)

	_, err = NewGameState(7)
	assert.ErrorIs(t, err, ErrInvalidBoardSize)
}

func TestOpeningScenario(t *testing.T) {
	g := startedGame(t)

	require.NoError(t, g.SelectStack(White, []string{"1"}))
	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "1"), To: Position{X: 2, Y: 2}}))
	assert.Equal(t, 1, g.RoundNumber)
	assert.Equal(t, Black, g.CurrentPlayer)
	assert.Equal(t, []string{"1"}, g.Tiles.TileAt(Position{X: 2, Y: 2}).Pieces)

	require.NoError(t, g.SelectStack(Black, []string{"22"}))
	require.NoError(t, g.MakeMove(Black, Move{Stack: pieces(g, "22"), To: Position{X: 0, Y: 0}}))
	assert.Equal(t, 2, g.RoundNumber)
	assert.Equal(t, White, g.CurrentPlayer)
	assert.Equal(t, 2, g.History.Len())
}

func TestFirstRoundSelection(t *testing.T) {
	g := startedGame(t)

	assert.ErrorIs(t, g.SelectStack(White, []string{"22"}), ErrIllegalSelection, "own reserve piece")
	assert.ErrorIs(t, g.SelectStack(White, []string{"43"}), ErrIllegalSelection, "opponent capstone")
	assert.Empty(t, g.SelectedStack)

	require.NoError(t, g.SelectStack(White, []string{"5"}))
	assert.Equal(t, "5", g.SelectedStack[0].ID)
	assert.ErrorIs(t, g.ToggleStand(White, "5"), ErrIllegalToggle)
}

func TestSelectRejectsOutOfTurnAndUnstarted(t *testing.T) {
	g, err := NewGameState(5)
	require.NoError(t, err)
	assert.ErrorIs(t, g.SelectStack(White, []string{"1"}), ErrGameNotStarted)

	g.Start()
	assert.ErrorIs(t, g.SelectStack(Black, []string{"22"}), ErrNotYourTurn)
	assert.ErrorIs(t, g.SelectStack(White, []string{"nope"}), ErrUnknownPiece)
}

func TestLaterRoundsSelectOwnPieces(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2
	put(g, Position{X: 1, Y: 1}, "1")
	put(g, Position{X: 3, Y: 3}, "22")

	assert.ErrorIs(t, g.SelectStack(White, []string{"2"}), ErrIllegalSelection)
	assert.ErrorIs(t, g.SelectStack(White, []string{"1"}), ErrIllegalSelection, "opponent top piece")
	require.NoError(t, g.SelectStack(White, []string{"44"}))
	require.NoError(t, g.SelectStack(White, []string{"22"}))
}

func TestToggleStand(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2

	require.NoError(t, g.SelectStack(White, []string{"22"}))
	require.NoError(t, g.ToggleStand(White, "22"))
	assert.Equal(t, Standingstone, g.Pieces.Get("22").Type)
	assert.Equal(t, Standingstone, g.SelectedStack[0].Type)
	require.NoError(t, g.ToggleStand(White, "22"))
	assert.Equal(t, Flatstone, g.Pieces.Get("22").Type)

	assert.ErrorIs(t, g.ToggleStand(White, "23"), ErrIllegalToggle, "not selected")

	require.NoError(t, g.SelectStack(White, []string{"44"}))
	assert.ErrorIs(t, g.ToggleStand(White, "44"), ErrIllegalToggle)
	assert.Equal(t, Capstone, g.Pieces.Get("44").Type)
}

func TestReselectLaysAbandonedStoneFlat(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2

	require.NoError(t, g.SelectStack(White, []string{"22"}))
	require.NoError(t, g.ToggleStand(White, "22"))

	// picking the same stone again keeps it standing
	require.NoError(t, g.SelectStack(White, []string{"22"}))
	assert.Equal(t, Standingstone, g.Pieces.Get("22").Type)

	require.NoError(t, g.SelectStack(White, []string{"23"}))
	assert.Equal(t, Flatstone, g.Pieces.Get("22").Type)
	assert.Equal(t, []Piece{*g.Pieces.Get("23")}, g.SelectedStack)

	// a rejected selection leaves the standing stone alone
	require.NoError(t, g.ToggleStand(White, "23"))
	assert.ErrorIs(t, g.SelectStack(White, []string{"2"}), ErrIllegalSelection)
	assert.Equal(t, Standingstone, g.Pieces.Get("23").Type)
}

func TestStackMoveDirectionIsCommitted(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2
	put(g, Position{X: 0, Y: 0}, "22", "23", "24")

	require.NoError(t, g.SelectStack(White, []string{"22", "23", "24"}))
	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "22", "23", "24"), From: at(0, 0), To: Position{X: 1, Y: 0}}))

	assert.Empty(t, g.Tiles.TileAt(Position{X: 0, Y: 0}).Pieces)
	assert.Equal(t, []string{"22", "23", "24"}, g.Tiles.TileAt(Position{X: 1, Y: 0}).Pieces)
	require.Len(t, g.SelectedStack, 2)
	assert.Equal(t, White, g.CurrentPlayer)
	assert.ElementsMatch(t, []Position{{X: 2, Y: 0}, {X: 1, Y: 0}}, g.LegalDestinations())

	before := g.Tiles.Clone()
	err := g.MakeMove(White, Move{Stack: pieces(g, "23", "24"), From: at(1, 0), To: Position{X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, before, g.Tiles)
	assert.ErrorIs(t, g.SelectStack(White, []string{"24"}), ErrSelectionInProgress)

	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "23", "24"), From: at(1, 0), To: Position{X: 2, Y: 0}}))
	assert.Equal(t, []string{"22"}, g.Tiles.TileAt(Position{X: 1, Y: 0}).Pieces)
	assert.Equal(t, []string{"23", "24"}, g.Tiles.TileAt(Position{X: 2, Y: 0}).Pieces)

	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "24"), From: at(2, 0), To: Position{X: 2, Y: 0}}))
	assert.Equal(t, []string{"23", "24"}, g.Tiles.TileAt(Position{X: 2, Y: 0}).Pieces)
	assert.Empty(t, g.SelectedStack)
	assert.Equal(t, Black, g.CurrentPlayer)
	assert.Equal(t, 2, g.RoundNumber)
	assert.Equal(t, 3, g.History.Len())
}

func TestMoveRejectsForgedIntents(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2
	put(g, Position{X: 2, Y: 2}, "22")

	assert.ErrorIs(t, g.MakeMove(White, Move{Stack: pieces(g, "22"), From: at(2, 2), To: Position{X: 2, Y: 3}}), ErrNoSelection)

	require.NoError(t, g.SelectStack(White, []string{"22"}))
	cases := map[string]Move{
		"diagonal":     {Stack: pieces(g, "22"), From: at(2, 2), To: Position{X: 3, Y: 3}},
		"two steps":    {Stack: pieces(g, "22"), From: at(2, 2), To: Position{X: 2, Y: 4}},
		"wrong origin": {Stack: pieces(g, "22"), From: at(1, 1), To: Position{X: 1, Y: 2}},
		"no origin":    {Stack: pieces(g, "22"), To: Position{X: 2, Y: 3}},
		"other stack":  {Stack: pieces(g, "23"), From: at(2, 2), To: Position{X: 2, Y: 3}},
		"off board":    {Stack: pieces(g, "22"), From: at(2, 2), To: Position{X: 2, Y: 5}},
	}
	for name, mv := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, g.MakeMove(White, mv), ErrIllegalMove)
			assert.Equal(t, 0, g.History.Len())
			assert.Len(t, g.SelectedStack, 1)
		})
	}
	assert.ErrorIs(t, g.MakeMove(Black, cases["diagonal"]), ErrNotYourTurn)
}

func TestCapstoneFlattensWall(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 2
	g.CurrentPlayer = Black
	g.Pieces.Get("22").Type = Standingstone
	put(g, Position{X: 2, Y: 2}, "22")
	put(g, Position{X: 1, Y: 2}, "43")

	require.NoError(t, g.SelectStack(Black, []string{"43"}))
	assert.Contains(t, g.LegalDestinations(), Position{X: 2, Y: 2})
	require.NoError(t, g.MakeMove(Black, Move{Stack: pieces(g, "43"), From: at(1, 2), To: Position{X: 2, Y: 2}}))

	assert.Equal(t, Flatstone, g.Pieces.Get("22").Type)
	assert.Equal(t, []string{"22", "43"}, g.Tiles.TileAt(Position{X: 2, Y: 2}).Pieces)
	assert.Equal(t, Standingstone, g.History[0].Pieces.Get("22").Type, "history keeps the pre-move wall")
	assert.Equal(t, 3, g.RoundNumber)
}

func TestRoadEndsGame(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 5
	for x, id := range []string{"22", "23", "24", "25"} {
		put(g, Position{X: x, Y: 1}, id)
	}

	require.NoError(t, g.SelectStack(White, []string{"26"}))
	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "26"), To: Position{X: 4, Y: 1}}))

	assert.True(t, g.GameOver)
	require.NotNil(t, g.Winner)
	assert.Equal(t, WhiteWins, *g.Winner)
	assert.Equal(t, 5, g.Flatstones.White)
	assert.Equal(t, White, g.CurrentPlayer, "turn does not advance after the game ends")

	assert.ErrorIs(t, g.SelectStack(White, []string{"27"}), ErrGameOver)
}

func TestMoverRoadTakesPrecedence(t *testing.T) {
	g := startedGame(t)
	g.RoundNumber = 10
	g.CurrentPlayer = Black
	// black road along y=0 except (2,0), white road along y=1 except (2,1)
	for i, x := range []int{0, 1, 3, 4} {
		put(g, Position{X: x, Y: 0}, []string{"1", "2", "3", "4"}[i])
		put(g, Position{X: x, Y: 1}, []string{"22", "23", "24", "25"}[i])
	}
	// (2,1) holds white under black; moving the black top to (2,0) completes
	// both roads at once.
	put(g, Position{X: 2, Y: 1}, "26", "5")

	require.NoError(t, g.SelectStack(Black, []string{"5"}))
	require.NoError(t, g.MakeMove(Black, Move{Stack: pieces(g, "5"), From: at(2, 1), To: Position{X: 2, Y: 0}}))

	require.True(t, g.GameOver)
	assert.Equal(t, BlackWins, *g.Winner)
}

// Random legal play must never duplicate or lose a piece.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := startedGame(t)
		total := len(g.Pieces)

		for step := 0; step < 400 && !g.GameOver; step++ {
			player := g.CurrentPlayer
			round := g.RoundNumber
			sel := candidateSelections(g)
			require.NotEmpty(t, sel, "seed %d: no selection available", seed)
			require.NoError(t, g.SelectStack(player, sel[rng.Intn(len(sel))]))

			for len(g.SelectedStack) > 0 && !g.GameOver {
				n := len(g.SelectedStack)
				dests := g.LegalDestinations()
				require.NotEmpty(t, dests)
				mv := Move{Stack: append([]Piece{}, g.SelectedStack...), To: dests[rng.Intn(len(dests))]}
				if tile := g.Tiles.TileOfPiece(g.SelectedStack[0].ID); tile != nil {
					p := tile.Position
					mv.From = &p
				}
				require.NoError(t, g.MakeMove(player, mv))
				if !g.GameOver {
					assert.Len(t, g.SelectedStack, n-1)
				}
				assertPiecesConserved(t, g, total)
			}

			if !g.GameOver {
				assert.Equal(t, player.Opponent(), g.CurrentPlayer)
				if player == Black {
					assert.Equal(t, round+1, g.RoundNumber)
				} else {
					assert.Equal(t, round, g.RoundNumber)
				}
			}
		}
	}
}

func candidateSelections(g *GameState) [][]string {
	var out [][]string
	owner := g.CurrentPlayer
	if g.RoundNumber == 1 {
		owner = owner.Opponent()
	}
	for _, p := range g.Pieces.InReserve(g.Tiles, owner) {
		if CanSelectReserve(p, g.CurrentPlayer, g.RoundNumber) == nil {
			out = append(out, []string{p.ID})
		}
	}
	if g.RoundNumber > 1 {
		for i := range g.Tiles {
			tile := &g.Tiles[i]
			if top := g.Pieces.topPiece(tile); top != nil && top.Color == g.CurrentPlayer {
				out = append(out, []string{top.ID})
			}
		}
	}
	return out
}

func assertPiecesConserved(t *testing.T, g *GameState, total int) {
	t.Helper()
	seen := map[string]int{}
	for _, tile := range g.Tiles {
		for _, id := range tile.Pieces {
			seen[id]++
			require.Equal(t, 1, seen[id], "piece %s appears twice", id)
			require.NotNil(t, g.Pieces.Get(id))
		}
	}
	reserve := len(g.Pieces.InReserve(g.Tiles, White)) + len(g.Pieces.InReserve(g.Tiles, Black))
	require.Equal(t, total, len(seen)+reserve)
}

func TestCloneIsIndependent(t *testing.T) {
	g := startedGame(t)
	require.NoError(t, g.SelectStack(White, []string{"1"}))
	require.NoError(t, g.MakeMove(White, Move{Stack: pieces(g, "1"), To: Position{X: 0, Y: 0}}))

	c := g.Clone()
	c.Tiles.TileAt(Position{X: 0, Y: 0}).Pieces[0] = "x"
	c.Pieces.Get("1").Type = Standingstone

	assert.Equal(t, "1", g.Tiles.TileAt(Position{X: 0, Y: 0}).Pieces[0])
	assert.Equal(t, Flatstone, g.Pieces.Get("1").Type)
}
