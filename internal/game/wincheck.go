package game

// CheckRoadWin reports whether color has a road between two opposite edges.
// Standing stones never count; flats and capstones do.
func CheckRoadWin(b Board, c Color, reg Registry) bool {
	size := b.Size()
	if size == 0 {
		return false
	}
	grid := make([][]bool, size)
	for x := range grid {
		grid[x] = make([]bool, size)
	}
	for i := range b {
		t := &b[i]
		top := reg.topPiece(t)
		if top != nil && top.Color == c && top.Type != Standingstone && t.Position.inside(size) {
			grid[t.Position.X][t.Position.Y] = true
		}
	}

	// x = 0 to x = size-1
	if spans(grid, size, func(p Position) bool { return p.X == 0 }, func(p Position) bool { return p.X == size-1 }) {
		return true
	}
	// y = 0 to y = size-1
	return spans(grid, size, func(p Position) bool { return p.Y == 0 }, func(p Position) bool { return p.Y == size-1 })
}

func spans(grid [][]bool, size int, start, goal func(Position) bool) bool {
	seen := make([][]bool, size)
	for x := range seen {
		seen[x] = make([]bool, size)
	}
	var queue []Position
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := Position{X: x, Y: y}
			if grid[x][y] && start(p) {
				seen[x][y] = true
				queue = append(queue, p)
			}
		}
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if goal(p) {
			return true
		}
		for _, d := range Cardinal {
			n := p.Add(d)
			if n.inside(size) && grid[n.X][n.Y] && !seen[n.X][n.Y] {
				seen[n.X][n.Y] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// CountFlatstones counts tiles whose top piece is a flatstone of color c.
func CountFlatstones(b Board, c Color, reg Registry) int {
	n := 0
	for i := range b {
		top := reg.topPiece(&b[i])
		if top != nil && top.Color == c && top.Type == Flatstone {
			n++
		}
	}
	return n
}

func Flatstones(b Board, reg Registry) FlatCount {
	return FlatCount{White: CountFlatstones(b, White, reg), Black: CountFlatstones(b, Black, reg)}
}

// AnyPlayerOutOfPieces reports whether either side has an empty reserve.
func AnyPlayerOutOfPieces(b Board, reg Registry) bool {
	return len(reg.InReserve(b, White)) == 0 || len(reg.InReserve(b, Black)) == 0
}

// Outcome decides the game after a placement by mover. ok is false while
// the game goes on.
func Outcome(b Board, reg Registry, mover Color) (Result, bool) {
	if CheckRoadWin(b, mover, reg) {
		return resultFor(mover), true
	}
	if CheckRoadWin(b, mover.Opponent(), reg) {
		return resultFor(mover.Opponent()), true
	}
	if !b.IsFull() && !AnyPlayerOutOfPieces(b, reg) {
		return "", false
	}
	flats := Flatstones(b, reg)
	switch {
	case flats.White > flats.Black:
		return WhiteWins, true
	case flats.Black > flats.White:
		return BlackWins, true
	}
	return Tie, true
}
