package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMovesReservePieceGoesAnywhereEmpty(t *testing.T) {
	g := startedGame(t)
	put(g, Position{X: 0, Y: 0}, "1")

	moves := CalculateMoves("22", g.Tiles, g.Pieces, AllDirections())
	assert.Len(t, moves, 24)
	assert.NotContains(t, moves, Position{X: 0, Y: 0})
}

func TestCalculateMovesBlocking(t *testing.T) {
	g := startedGame(t)
	g.Pieces.Get("22").Type = Standingstone
	put(g, Position{X: 2, Y: 2}, "22")
	put(g, Position{X: 2, Y: 1}, "44")
	put(g, Position{X: 1, Y: 2}, "1")

	moves := CalculateMoves("1", g.Tiles, g.Pieces, AllDirections())
	assert.NotContains(t, moves, Position{X: 2, Y: 2}, "flatstone onto wall")
	assert.ElementsMatch(t, []Position{{X: 1, Y: 2}, {X: 1, Y: 3}, {X: 1, Y: 1}, {X: 0, Y: 2}}, moves)

	g.Pieces.Get("1").Type = Standingstone
	assert.NotContains(t, CalculateMoves("1", g.Tiles, g.Pieces, AllDirections()), Position{X: 2, Y: 2}, "wall onto wall")

	// capstone may enter a wall but never another capstone
	put(g, Position{X: 3, Y: 1}, "43")
	moves = CalculateMoves("43", g.Tiles, g.Pieces, AllDirections())
	assert.NotContains(t, moves, Position{X: 2, Y: 1})
	assert.Contains(t, moves, Position{X: 4, Y: 1})

	put(g, Position{X: 3, Y: 2}, "2")
	assert.Contains(t, CalculateMoves("2", g.Tiles, g.Pieces, AllDirections()), Position{X: 3, Y: 3})
	g.Tiles.TileAt(Position{X: 3, Y: 2}).Pieces = []string{}
	g.Tiles.TileAt(Position{X: 3, Y: 1}).Pieces = []string{}
	put(g, Position{X: 3, Y: 2}, "43")
	assert.Contains(t, CalculateMoves("43", g.Tiles, g.Pieces, AllDirections()), Position{X: 2, Y: 2})
}

func TestCalculateMovesHonoursDirectionSet(t *testing.T) {
	g := startedGame(t)
	put(g, Position{X: 0, Y: 0}, "22")

	moves := CalculateMoves("22", g.Tiles, g.Pieces, []Position{{X: 1, Y: 0}, Stay})
	assert.ElementsMatch(t, []Position{{X: 1, Y: 0}, {X: 0, Y: 0}}, moves)

	assert.Empty(t, CalculateMoves("22", g.Tiles, g.Pieces, []Position{{X: 1, Y: 1}, {X: 2, Y: 0}}))
	assert.Empty(t, CalculateMoves("22", g.Tiles, g.Pieces, []Position{{X: -1, Y: 0}}))
}

func TestSelectionFromTile(t *testing.T) {
	g := startedGame(t)
	put(g, Position{X: 1, Y: 1}, "1", "22", "2", "23")

	tile, err := SelectionFromTile([]string{"22", "2", "23"}, g.Tiles, g.Pieces, White)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 1, Y: 1}, tile.Position)

	_, err = SelectionFromTile([]string{"22", "2"}, g.Tiles, g.Pieces, White)
	assert.ErrorIs(t, err, ErrIllegalSelection, "must reach the top")
	_, err = SelectionFromTile([]string{"22", "23"}, g.Tiles, g.Pieces, White)
	assert.ErrorIs(t, err, ErrIllegalSelection, "must be contiguous")
	_, err = SelectionFromTile([]string{"23"}, g.Tiles, g.Pieces, Black)
	assert.ErrorIs(t, err, ErrIllegalSelection, "top belongs to the other player")
}

func TestSelectionLimitedToBoardSize(t *testing.T) {
	g, err := NewGameState(3)
	require.NoError(t, err)
	// size 3: black 1-10, white 11-20
	put(g, Position{X: 0, Y: 0}, "1", "11", "2", "12")

	_, err = SelectionFromTile([]string{"1", "11", "2", "12"}, g.Tiles, g.Pieces, White)
	assert.ErrorIs(t, err, ErrIllegalSelection)
	_, err = SelectionFromTile([]string{"11", "2", "12"}, g.Tiles, g.Pieces, White)
	assert.NoError(t, err)
}

func TestCanSelectReserve(t *testing.T) {
	flat := Piece{ID: "1", Type: Flatstone, Color: Black}
	wall := Piece{ID: "2", Type: Standingstone, Color: Black}
	capstone := Piece{ID: "43", Type: Capstone, Color: Black}

	assert.NoError(t, CanSelectReserve(flat, White, 1))
	assert.Error(t, CanSelectReserve(wall, White, 1))
	assert.Error(t, CanSelectReserve(capstone, White, 1))
	assert.Error(t, CanSelectReserve(flat, Black, 1))

	assert.NoError(t, CanSelectReserve(capstone, Black, 2))
	assert.NoError(t, CanSelectReserve(wall, Black, 2))
	assert.Error(t, CanSelectReserve(flat, White, 2))
}

func TestNewRegistryReserveCounts(t *testing.T) {
	cases := []struct {
		size, stones, caps int
	}{
		{3, 10, 0},
		{4, 15, 0},
		{5, 21, 1},
		{6, 30, 1},
	}
	for _, tc := range cases {
		reg, err := NewRegistry(tc.size)
		require.NoError(t, err)
		assert.Len(t, reg, 2*(tc.stones+tc.caps), "size %d", tc.size)

		b := NewBoard(tc.size)
		caps := 0
		for _, p := range reg.InReserve(b, White) {
			if p.Type == Capstone {
				caps++
			}
		}
		assert.Equal(t, tc.caps, caps, "size %d", tc.size)
	}

	reg, err := NewRegistry(5)
	require.NoError(t, err)
	assert.Equal(t, Piece{ID: "1", Type: Flatstone, Color: Black}, reg[0])
	assert.Equal(t, Piece{ID: "22", Type: Flatstone, Color: White}, reg[21])
	assert.Equal(t, Piece{ID: "43", Type: Capstone, Color: Black}, reg[42])
	assert.Equal(t, Piece{ID: "44", Type: Capstone, Color: White}, reg[43])

	_, err = NewRegistry(2)
	assert.ErrorIs(t, err, ErrInvalidBoardSize)
}
