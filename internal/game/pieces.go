package game

import "strconv"

// Registry is every piece of a match, on the board or in reserve.
type Registry []Piece

// NewRegistry lays out the reserve for size: black stones, white stones,
// then capstones (black first). Ids count up from "1".
func NewRegistry(size int) (Registry, error) {
	res, ok := ReserveFor(size)
	if !ok {
		return nil, ErrInvalidBoardSize
	}
	reg := make(Registry, 0, 2*(res.Stones+res.Capstones))
	next := 1
	add := func(n int, t PieceType, c Color) {
		for i := 0; i < n; i++ {
			reg = append(reg, Piece{ID: strconv.Itoa(next), Type: t, Color: c})
			next++
		}
	}
	add(res.Stones, Flatstone, Black)
	add(res.Stones, Flatstone, White)
	add(res.Capstones, Capstone, Black)
	add(res.Capstones, Capstone, White)
	return reg, nil
}

// Get returns a pointer into the registry so type changes stick.
func (r Registry) Get(id string) *Piece {
	for i := range r {
		if r[i].ID == id {
			return &r[i]
		}
	}
	return nil
}

// InReserve lists the pieces of color that are not on the board.
func (r Registry) InReserve(b Board, c Color) []Piece {
	onBoard := make(map[string]struct{}, len(r))
	for _, t := range b {
		for _, id := range t.Pieces {
			onBoard[id] = struct{}{}
		}
	}
	var out []Piece
	for _, p := range r {
		if p.Color != c {
			continue
		}
		if _, ok := onBoard[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func (r Registry) Clone() Registry {
	return append(Registry{}, r...)
}

func (r Registry) topPiece(t *Tile) *Piece {
	id := t.Top()
	if id == "" {
		return nil
	}
	return r.Get(id)
}
