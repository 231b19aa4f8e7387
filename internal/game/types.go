package game

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool { return c == White || c == Black }

type PieceType string

const (
	Flatstone     PieceType = "flatstone"
	Standingstone PieceType = "standingstone"
	Capstone      PieceType = "capstone"
)

// Result is the terminal outcome of a match.
type Result string

const (
	WhiteWins Result = "white"
	BlackWins Result = "black"
	Tie       Result = "tie"
)

func resultFor(c Color) Result {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(d Position) Position { return Position{X: p.X + d.X, Y: p.Y + d.Y} }

func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Position) inside(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Piece identity and color never change; Type flips between flat and standing.
type Piece struct {
	ID    string    `json:"id"`
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Tile holds piece ids bottom to top.
type Tile struct {
	Position Position `json:"position"`
	Pieces   []string `json:"pieces"`
}

// Move is one placement intent. From is nil for a reserve placement.
type Move struct {
	Stack []Piece   `json:"stack"`
	From  *Position `json:"from"`
	To    Position  `json:"to"`
}

type FlatCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Reserve is the per-player starting inventory for a board size.
type Reserve struct {
	Stones    int
	Capstones int
}

var reserves = map[int]Reserve{
	3: {Stones: 10, Capstones: 0},
	4: {Stones: 15, Capstones: 0},
	5: {Stones: 21, Capstones: 1},
	6: {Stones: 30, Capstones: 1},
}

const DefaultBoardSize = 5

// ReserveFor reports the reserve for size and whether the size is supported.
func ReserveFor(size int) (Reserve, bool) {
	r, ok := reserves[size]
	return r, ok
}
