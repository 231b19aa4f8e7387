package room

import (
	"context"
	"time"

	"tak-online/internal/archive"
	"tak-online/internal/game"
)

type Mode string

const (
	Local       Mode = "local"
	Multiplayer Mode = "multiplayer"
)

func (m Mode) Valid() bool { return m == Local || m == Multiplayer }

// Capacity is the number of seats; the game starts once they are all taken.
func (m Mode) Capacity() int {
	if m == Local {
		return 1
	}
	return 2
}

type Player struct {
	ConnID   string     `json:"-"`
	Username string     `json:"username"`
	Color    game.Color `json:"color"`
}

type Message struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

const SystemUsername = "System"

type Room struct {
	ID        string
	Mode      Mode
	Players   []Player
	Game      *game.GameState
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time

	votes    map[string]struct{}
	archived bool
}

func newRoom(id string, mode Mode, g *game.GameState, now time.Time) *Room {
	return &Room{
		ID:        id,
		Mode:      mode,
		Game:      g,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
		votes:     map[string]struct{}{},
	}
}

func (r *Room) player(connID string) (int, *Player) {
	for i := range r.Players {
		if r.Players[i].ConnID == connID {
			return i, &r.Players[i]
		}
	}
	return -1, nil
}

// freeColor picks the seat for the next joiner: white first, otherwise
// whichever color nobody holds.
func (r *Room) freeColor() game.Color {
	if r.Mode == Local {
		return game.White
	}
	taken := map[game.Color]bool{}
	for _, p := range r.Players {
		taken[p.Color] = true
	}
	if !taken[game.White] {
		return game.White
	}
	return game.Black
}

func (r *Room) full() bool { return len(r.Players) >= r.Mode.Capacity() }

// actor is the color a player moves as. A local player drives both sides.
func (r *Room) actor(p *Player) game.Color {
	if r.Mode == Local {
		return r.Game.CurrentPlayer
	}
	return p.Color
}

func (r *Room) post(m Message, limit int) {
	r.Messages = append(r.Messages, m)
	if limit > 0 && len(r.Messages) > limit {
		r.Messages = append([]Message{}, r.Messages[len(r.Messages)-limit:]...)
	}
}

func (r *Room) transcript() []Message {
	return append([]Message{}, r.Messages...)
}

// Summary is the lobby view of a room.
type Summary struct {
	ID          string       `json:"id"`
	Mode        Mode         `json:"mode"`
	BoardSize   int          `json:"boardSize"`
	Players     []Player     `json:"players"`
	Capacity    int          `json:"capacity"`
	GameStarted bool         `json:"gameStarted"`
	GameOver    bool         `json:"gameOver"`
	Winner      *game.Result `json:"winner,omitempty"`
	RoundNumber int          `json:"roundNumber"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (r *Room) Summary() Summary {
	s := Summary{
		ID:          r.ID,
		Mode:        r.Mode,
		BoardSize:   r.Game.BoardSize,
		Players:     append([]Player{}, r.Players...),
		Capacity:    r.Mode.Capacity(),
		GameStarted: r.Game.GameStarted,
		GameOver:    r.Game.GameOver,
		RoundNumber: r.Game.RoundNumber,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Game.Winner != nil {
		w := *r.Game.Winner
		s.Winner = &w
	}
	return s
}

// Store keeps live rooms by id.
type Store interface {
	CreateRoom(r *Room) error
	GetRoom(id string) (*Room, bool)
	DeleteRoom(id string)
	ListRooms() []*Room
}

// Recorder archives finished matches.
type Recorder interface {
	Record(ctx context.Context, m archive.Match) error
}

// Payloads sent to clients.

type Joined struct {
	RoomID   string          `json:"roomId"`
	Username string          `json:"username"`
	Color    game.Color      `json:"color"`
	State    *game.GameState `json:"gameState"`
}

type Vote struct {
	UsernameVote string `json:"usernameVote"`
	VotesNeeded  int    `json:"votesNeeded"`
}
