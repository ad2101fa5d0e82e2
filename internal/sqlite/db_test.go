package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database closed at test end.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrations_CreateTables(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"slots", "activity_log"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	// Safe to apply on every start.
	require.NoError(t, db.RunMigrations())
}

func TestOpen_CreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "okrboard.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	require.Equal(t, 5000, timeout)

	require.FileExists(t, path)
}

func TestOpen_PersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "okrboard.db")
	ctx := t.Context()

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewSlotRepository(db).Put(ctx, "doc", []byte(`{"projects":[]}`)))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	data, err := NewSlotRepository(db).Get(ctx, "doc")
	require.NoError(t, err)
	require.JSONEq(t, `{"projects":[]}`, string(data))
}
