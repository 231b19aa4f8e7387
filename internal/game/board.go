package game

// Board is the full grid laid out x-major: index = x*size + y.
type Board []Tile

func NewBoard(size int) Board {
	b := make(Board, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			b = append(b, Tile{Position: Position{X: x, Y: y}, Pieces: []string{}})
		}
	}
	return b
}

// Size is the side length of the square board.
func (b Board) Size() int {
	n := 0
	for n*n < len(b) {
		n++
	}
	return n
}

// TileAt returns nil for positions off the board.
func (b Board) TileAt(p Position) *Tile {
	size := b.Size()
	if !p.inside(size) {
		return nil
	}
	t := &b[p.X*size+p.Y]
	if t.Position != p {
		// tiles arrived in a foreign order; fall back to a scan
		for i := range b {
			if b[i].Position == p {
				return &b[i]
			}
		}
		return nil
	}
	return t
}

func (b Board) TileOfPiece(id string) *Tile {
	for i := range b {
		for _, pid := range b[i].Pieces {
			if pid == id {
				return &b[i]
			}
		}
	}
	return nil
}

func (b Board) IsOnBoard(id string) bool { return b.TileOfPiece(id) != nil }

func (b Board) IsEmpty(p Position) bool {
	t := b.TileAt(p)
	return t != nil && len(t.Pieces) == 0
}

func (b Board) AllPositions() []Position {
	out := make([]Position, 0, len(b))
	for _, t := range b {
		out = append(out, t.Position)
	}
	return out
}

func (b Board) EmptyPositions() []Position {
	var out []Position
	for _, t := range b {
		if len(t.Pieces) == 0 {
			out = append(out, t.Position)
		}
	}
	return out
}

// IsFull reports whether every tile holds at least one piece.
func (b Board) IsFull() bool {
	for _, t := range b {
		if len(t.Pieces) == 0 {
			return false
		}
	}
	return true
}

func (b Board) IsEmptyBoard() bool {
	for _, t := range b {
		if len(t.Pieces) > 0 {
			return false
		}
	}
	return true
}

// Top returns the id of the topmost piece, or "" for an empty tile.
func (t *Tile) Top() string {
	if t == nil || len(t.Pieces) == 0 {
		return ""
	}
	return t.Pieces[len(t.Pieces)-1]
}

func (t *Tile) indexOf(id string) int {
	for i, pid := range t.Pieces {
		if pid == id {
			return i
		}
	}
	return -1
}

// Clone deep-copies the board so snapshots never alias live stacks.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, t := range b {
		out[i] = Tile{Position: t.Position, Pieces: append([]string{}, t.Pieces...)}
	}
	return out
}
