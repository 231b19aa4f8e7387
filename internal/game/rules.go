package game

// Stay is the "drop the rest here" direction.
var Stay = Position{X: 0, Y: 0}

// Cardinal lists the four orthogonal steps.
var Cardinal = []Position{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// AllDirections is the direction set before a stack move commits.
func AllDirections() []Position {
	return append([]Position{Stay}, Cardinal...)
}

// CalculateMoves returns legal destinations for the selection whose bottom
// piece is pieceID. A piece off the board may go to any empty tile.
func CalculateMoves(pieceID string, b Board, reg Registry, dirs []Position) []Position {
	origin := b.TileOfPiece(pieceID)
	if origin == nil {
		return b.EmptyPositions()
	}
	moving := reg.Get(pieceID)
	if moving == nil {
		return nil
	}

	size := b.Size()
	var out []Position
	for _, d := range dirs {
		if d == Stay {
			out = append(out, origin.Position)
			continue
		}
		if !isUnitStep(d) {
			continue
		}
		to := origin.Position.Add(d)
		if !to.inside(size) {
			continue
		}
		if !CanEnter(*moving, reg.topPiece(b.TileAt(to))) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// CanEnter applies the blocking rules for a piece landing on top.
func CanEnter(moving Piece, top *Piece) bool {
	if top == nil {
		return true
	}
	switch top.Type {
	case Capstone:
		return false
	case Standingstone:
		return moving.Type == Capstone
	}
	return true
}

func isUnitStep(d Position) bool {
	for _, c := range Cardinal {
		if c == d {
			return true
		}
	}
	return false
}

func containsPosition(ps []Position, p Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// SelectionFromTile validates picking up ids from the tile that holds the
// first of them. ids must be a contiguous run ending at the top of the stack.
func SelectionFromTile(ids []string, b Board, reg Registry, player Color) (*Tile, error) {
	if len(ids) == 0 {
		return nil, ErrIllegalSelection
	}
	tile := b.TileOfPiece(ids[0])
	if tile == nil {
		return nil, ErrIllegalSelection
	}
	start := tile.indexOf(ids[0])
	run := tile.Pieces[start:]
	if len(run) != len(ids) || len(run) > b.Size() {
		return nil, ErrIllegalSelection
	}
	for i := range run {
		if run[i] != ids[i] {
			return nil, ErrIllegalSelection
		}
	}
	top := reg.topPiece(tile)
	if top == nil || top.Color != player {
		return nil, ErrIllegalSelection
	}
	return tile, nil
}

// CanSelectReserve enforces the opening swap in round one and own-color
// selection afterwards.
func CanSelectReserve(p Piece, player Color, round int) error {
	if round == 1 {
		if p.Color == player || p.Type != Flatstone {
			return ErrIllegalSelection
		}
		return nil
	}
	if p.Color != player {
		return ErrIllegalSelection
	}
	return nil
}
