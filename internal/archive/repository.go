package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("archive: match not found")

// Match is one finished game.
type Match struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	Mode       string    `json:"mode"`
	BoardSize  int       `json:"boardSize"`
	Winner     string    `json:"winner"`
	WhiteFlats int       `json:"whiteFlats"`
	BlackFlats int       `json:"blackFlats"`
	Rounds     int       `json:"rounds"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts m, filling in ID and FinishedAt when they are zero.
func (r *Repository) Record(ctx context.Context, m Match) error {
	if r.db == nil {
		return errors.New("archive repository: db is nil")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.FinishedAt.IsZero() {
		m.FinishedAt = time.Now()
	}

	const query = `
INSERT INTO matches (
    id, room_id, mode, board_size, winner, white_flats, black_flats, rounds, moves, finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	if _, err := r.db.ExecContext(ctx, query,
		m.ID, m.RoomID, m.Mode, m.BoardSize, m.Winner,
		m.WhiteFlats, m.BlackFlats, m.Rounds, m.Moves, m.FinishedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Match, error) {
	const query = `
SELECT id, room_id, mode, board_size, winner, white_flats, black_flats, rounds, moves, finished_at
FROM matches
WHERE id = ?
`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

// ListRecent returns matches newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Match, error) {
	const query = `
SELECT id, room_id, mode, board_size, winner, white_flats, black_flats, rounds, moves, finished_at
FROM matches
ORDER BY finished_at DESC
LIMIT ?
`
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

func scanMatch(scanner interface {
	Scan(dest ...any) error
}) (Match, error) {
	var m Match
	if err := scanner.Scan(
		&m.ID, &m.RoomID, &m.Mode, &m.BoardSize, &m.Winner,
		&m.WhiteFlats, &m.BlackFlats, &m.Rounds, &m.Moves, &m.FinishedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, fmt.Errorf("scan match: %w", err)
	}
	m.FinishedAt = m.FinishedAt.UTC()
	return m, nil
}
