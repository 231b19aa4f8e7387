package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteConfig struct {
	// Path is the DSN; ":memory:" keeps the archive in process memory.
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func OpenSQLite(cfg SQLiteConfig) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("open sqlite: path must not be empty")
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// every :memory: connection is its own database, so the one connection
	// must never be closed
	if cfg.Path == ":memory:" {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS matches (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    mode TEXT NOT NULL,
    board_size INTEGER NOT NULL,
    winner TEXT NOT NULL,
    white_flats INTEGER NOT NULL,
    black_flats INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    moves INTEGER NOT NULL,
    finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS matches_finished_at ON matches (finished_at);
`

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}
