package room

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"tak-online/internal/archive"
	"tak-online/internal/config"
	"tak-online/internal/game"
)

const recordTimeout = 5 * time.Second

// Manager owns every room. One mutex serialises all intents, so each
// GameState is mutated to completion before the next intent runs.
type Manager struct {
	mu    sync.Mutex
	store Store
	cfg   config.Config
	out   Broadcaster
	rec   Recorder
	log   *zap.Logger
	now   func() time.Time
}

// NewManager wires a manager. rec may be nil when no archive is configured.
func NewManager(s Store, cfg config.Config, out Broadcaster, rec Recorder, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: s, cfg: cfg, out: out, rec: rec, log: log, now: time.Now}
}

// JoinRoom seats connID in roomID, creating the room with mode and
// boardSize on first reference. boardSize 0 means the configured default.
func (m *Manager) JoinRoom(connID, roomID, username string, mode Mode, boardSize int) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if boardSize == 0 {
		boardSize = m.cfg.BoardSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		g, err := game.NewGameState(boardSize)
		if err != nil {
			return err
		}
		r = newRoom(roomID, mode, g, m.now())
		if err := m.store.CreateRoom(r); err != nil {
			return err
		}
		m.log.Info("room created",
			zap.String("room_id", roomID),
			zap.String("mode", string(mode)),
			zap.Int("board_size", boardSize))
	}

	if r.Mode != mode {
		m.out.Send(connID, ActionModeError, "Your game mode does not match the room's mode.")
		return ErrModeMismatch
	}

	if _, p := r.player(connID); p != nil {
		m.out.Send(connID, ActionRoomJoined, Joined{RoomID: r.ID, Username: p.Username, Color: p.Color, State: r.Game.Clone()})
		return nil
	}
	if r.full() {
		m.out.Send(connID, ActionRoomFull, r.ID)
		return ErrRoomFull
	}

	p := Player{ConnID: connID, Username: username, Color: r.freeColor()}
	r.Players = append(r.Players, p)
	m.out.Join(r.ID, connID)
	if r.full() && !r.Game.GameOver {
		r.Game.Start()
	}
	r.UpdatedAt = m.now()

	m.log.Info("player joined",
		zap.String("room_id", r.ID),
		zap.String("conn_id", connID),
		zap.String("username", username),
		zap.String("color", string(p.Color)))

	m.out.Send(connID, ActionRoomJoined, Joined{RoomID: r.ID, Username: username, Color: p.Color, State: r.Game.Clone()})
	m.out.Broadcast(r.ID, ActionGameUpdated, r.Game.Clone())
	return nil
}

// LeaveRoom removes connID from roomID and tells it so.
func (m *Manager) LeaveRoom(connID, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	idx, _ := r.player(connID)
	if idx < 0 {
		m.out.Leave(roomID, connID)
		return ErrNotInRoom
	}
	m.leave(r, idx)
	m.out.Send(connID, ActionRoomLeft, nil)
	return nil
}

// Disconnect treats a dropped connection as leaving every room it sat in.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.store.ListRooms() {
		if idx, _ := r.player(connID); idx >= 0 {
			m.leave(r, idx)
		}
	}
}

func (m *Manager) leave(r *Room, idx int) {
	p := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	delete(r.votes, p.ConnID)
	m.out.Leave(r.ID, p.ConnID)
	m.log.Info("player left",
		zap.String("room_id", r.ID),
		zap.String("conn_id", p.ConnID),
		zap.String("username", p.Username))

	if len(r.Players) == 0 {
		m.store.DeleteRoom(r.ID)
		m.log.Info("room deleted", zap.String("room_id", r.ID))
		return
	}

	r.post(Message{Username: SystemUsername, Content: p.Username + " left the room"}, m.cfg.MaxChatHistory)
	r.Game.Pause()
	r.UpdatedAt = m.now()
	m.out.Broadcast(r.ID, ActionMessagePosted, r.transcript())
	m.out.Broadcast(r.ID, ActionGameUpdated, r.Game.Clone())
}

// PostChat appends a message from a seated player to the transcript.
// Blank messages are dropped.
func (m *Manager) PostChat(connID, roomID, content string) error {
	content = strings.TrimSpace(content)
	if limit := m.cfg.MaxChatLength; limit > 0 && utf8.RuneCountInString(content) > limit {
		content = string([]rune(content)[:limit])
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	_, p := r.player(connID)
	if p == nil {
		return ErrNotInRoom
	}
	if content == "" {
		return nil
	}
	r.post(Message{Username: p.Username, Content: content}, m.cfg.MaxChatHistory)
	r.UpdatedAt = m.now()
	m.out.Broadcast(r.ID, ActionMessagePosted, r.transcript())
	return nil
}

func (m *Manager) SelectStack(connID, roomID string, ids []string) error {
	return m.intent(connID, roomID, "selectStack", func(g *game.GameState, actor game.Color) error {
		return g.SelectStack(actor, ids)
	})
}

func (m *Manager) MakeMove(connID, roomID string, mv game.Move) error {
	return m.intent(connID, roomID, "makeMove", func(g *game.GameState, actor game.Color) error {
		return g.MakeMove(actor, mv)
	})
}

func (m *Manager) ChangePieceStand(connID, roomID, pieceID string) error {
	return m.intent(connID, roomID, "changePieceStand", func(g *game.GameState, actor game.Color) error {
		return g.ToggleStand(actor, pieceID)
	})
}

// intent runs one game mutation for a seated player. A rejected intent
// changes nothing and broadcasts nothing.
func (m *Manager) intent(connID, roomID, name string, apply func(*game.GameState, game.Color) error) error {
	m.mu.Lock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		m.mu.Unlock()
		return ErrRoomNotFound
	}
	_, p := r.player(connID)
	if p == nil {
		m.mu.Unlock()
		return ErrNotInRoom
	}

	if err := apply(r.Game, r.actor(p)); err != nil {
		m.mu.Unlock()
		m.log.Debug("intent rejected",
			zap.String("room_id", roomID),
			zap.String("conn_id", connID),
			zap.String("intent", name),
			zap.Error(err))
		return err
	}
	r.UpdatedAt = m.now()
	m.out.Broadcast(r.ID, ActionGameUpdated, r.Game.Clone())

	var finished *archive.Match
	if r.Game.GameOver && !r.archived {
		r.archived = true
		mt := matchOf(r, m.now())
		finished = &mt
		m.log.Info("game over",
			zap.String("room_id", r.ID),
			zap.String("winner", mt.Winner),
			zap.Int("rounds", mt.Rounds))
	}
	m.mu.Unlock()

	if finished != nil {
		m.record(*finished)
	}
	return nil
}

func matchOf(r *Room, now time.Time) archive.Match {
	g := r.Game
	winner := ""
	if g.Winner != nil {
		winner = string(*g.Winner)
	}
	return archive.Match{
		RoomID:     r.ID,
		Mode:       string(r.Mode),
		BoardSize:  g.BoardSize,
		Winner:     winner,
		WhiteFlats: g.Flatstones.White,
		BlackFlats: g.Flatstones.Black,
		Rounds:     g.RoundNumber,
		Moves:      g.Moves(),
		FinishedAt: now,
	}
}

func (m *Manager) record(mt archive.Match) {
	if m.rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := m.rec.Record(ctx, mt); err != nil {
		m.log.Error("archive match", zap.String("room_id", mt.RoomID), zap.Error(err))
	}
}

// PlayAgain resets a local room at once. A multiplayer room resets when
// every seated player has voted; until then the tally is broadcast.
func (m *Manager) PlayAgain(connID, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	_, p := r.player(connID)
	if p == nil {
		return ErrNotInRoom
	}

	if r.Mode == Multiplayer {
		r.votes[connID] = struct{}{}
		if need := len(r.Players) - len(r.votes); need > 0 {
			m.out.Broadcast(r.ID, ActionPlayAgainVote, Vote{UsernameVote: p.Username, VotesNeeded: need})
			return nil
		}
	}

	g, err := game.NewGameState(r.Game.BoardSize)
	if err != nil {
		return err
	}
	if r.full() {
		g.Start()
	}
	r.Game = g
	r.votes = map[string]struct{}{}
	r.archived = false
	r.UpdatedAt = m.now()
	m.log.Info("game reset", zap.String("room_id", r.ID))
	m.out.Broadcast(r.ID, ActionGameUpdated, r.Game.Clone())
	return nil
}

// Snapshot returns a copy of the room's game.
func (m *Manager) Snapshot(roomID string) (*game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r.Game.Clone(), nil
}

func (m *Manager) Info(roomID string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return Summary{}, ErrRoomNotFound
	}
	return r.Summary(), nil
}

func (m *Manager) Rooms() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := m.store.ListRooms()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	return out
}

// LegalDestinations lists where the room's current selection may drop next.
func (m *Manager) LegalDestinations(roomID string) ([]game.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r.Game.LegalDestinations(), nil
}

// EvictIdle drops rooms that have seen no activity for the configured idle
// timeout and returns how many went.
func (m *Manager) EvictIdle() int {
	if m.cfg.RoomIdleTimeout <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.RoomIdleTimeout)
	n := 0
	for _, r := range m.store.ListRooms() {
		if r.UpdatedAt.After(cutoff) {
			continue
		}
		for _, p := range r.Players {
			m.out.Send(p.ConnID, ActionRoomLeft, nil)
			m.out.Leave(r.ID, p.ConnID)
		}
		m.store.DeleteRoom(r.ID)
		m.log.Info("room evicted", zap.String("room_id", r.ID), zap.Time("last_activity", r.UpdatedAt))
		n++
	}
	return n
}
