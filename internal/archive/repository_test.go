package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(context.Background(), db))
	// idempotent
	require.NoError(t, EnsureSchema(context.Background(), db))
	return NewRepository(db)
}

func TestRecordAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m := Match{
		ID:         "m-1",
		RoomID:     "lobby",
		Mode:       "multiplayer",
		BoardSize:  5,
		Winner:     "white",
		WhiteFlats: 9,
		BlackFlats: 7,
		Rounds:     14,
		Moves:      29,
		FinishedAt: finished,
	}
	require.NoError(t, repo.Record(ctx, m))

	got, err := repo.FindByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordFillsIDAndTime(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, Match{RoomID: "r", Mode: "local", BoardSize: 3, Winner: "tie"}))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].FinishedAt.IsZero())
}

func TestListRecentNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Record(ctx, Match{
			ID: id, RoomID: "r", Mode: "local", BoardSize: 5, Winner: "black",
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(SQLiteConfig{})
	assert.Error(t, err)
}

func TestMemoryArchiveSurvivesIdleConnections(t *testing.T) {
	db, err := OpenSQLite(SQLiteConfig{Path: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	assert.Equal(t, 1, db.Stats().OpenConnections)

	repo := NewRepository(db)
	require.NoError(t, repo.Record(ctx, Match{RoomID: "r", Mode: "local", BoardSize: 5, Winner: "white"}))
	require.NoError(t, repo.Record(ctx, Match{RoomID: "r", Mode: "local", BoardSize: 5, Winner: "black"}))

	list, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
