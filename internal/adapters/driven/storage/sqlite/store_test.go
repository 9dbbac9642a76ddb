package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func record(id, query string, at time.Time) domain.QueryRecord {
	return domain.QueryRecord{
		ID:          id,
		Query:       query,
		Source:      domain.QuerySourceWidget,
		ResultCount: 3,
		CreatedAt:   at,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "history.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
	info, err := os.Stat(nestedDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='query_history'",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.HistoryStore().Add(ctx, record("a", "golang", time.Now())))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.HistoryStore().Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "golang", got[0].Query)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== History Store Tests ====================

func TestHistoryStore_RecentNewestFirst(t *testing.T) {
	hs := setupTestStore(t).HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, hs.Add(ctx, record("1", "first", base)))
	require.NoError(t, hs.Add(ctx, record("2", "second", base.Add(time.Minute))))
	require.NoError(t, hs.Add(ctx, record("3", "third", base.Add(2*time.Minute))))

	got, err := hs.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Query)
	assert.Equal(t, "second", got[1].Query)
	assert.Equal(t, domain.QuerySourceWidget, got[0].Source)
	assert.Equal(t, 3, got[0].ResultCount)
	assert.True(t, base.Add(2*time.Minute).Equal(got[0].CreatedAt))

	all, err := hs.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoryStore_AddDefaultsTimestamp(t *testing.T) {
	hs := setupTestStore(t).HistoryStore()
	ctx := context.Background()

	rec := record("x", "gopher", time.Time{})
	require.NoError(t, hs.Add(ctx, rec))

	got, err := hs.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestHistoryStore_Clear(t *testing.T) {
	hs := setupTestStore(t).HistoryStore()
	ctx := context.Background()

	require.NoError(t, hs.Add(ctx, record("1", "a", time.Now())))
	require.NoError(t, hs.Clear(ctx))

	got, err := hs.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
