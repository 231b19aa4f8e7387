package game

// Snapshot is the board and registry as they stood before a move.
type Snapshot struct {
	Tiles  Board    `json:"tiles"`
	Pieces Registry `json:"pieces"`
}

// History is an append-only log for client time-travel. It is never
// replayed or rolled back by the server.
type History []Snapshot

func (h *History) Append(b Board, reg Registry) {
	*h = append(*h, Snapshot{Tiles: b.Clone(), Pieces: reg.Clone()})
}

func (h History) Len() int { return len(h) }

func (h History) clone() History {
	out := make(History, len(h))
	for i, s := range h {
		out[i] = Snapshot{Tiles: s.Tiles.Clone(), Pieces: s.Pieces.Clone()}
	}
	return out
}
