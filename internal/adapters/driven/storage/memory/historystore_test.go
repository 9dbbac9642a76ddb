package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

func TestHistoryStore_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "1", Query: "auth", CreatedAt: base}))
	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "2", Query: "api", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "3", Query: "oauth", CreatedAt: base.Add(2 * time.Minute)}))

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "oauth", records[0].Query)
	assert.Equal(t, "api", records[1].Query)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoryStore_SameTimestampLaterInsertFirst(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "1", Query: "first", CreatedAt: at}))
	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "2", Query: "second", CreatedAt: at}))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "second", records[0].Query)
}

func TestHistoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	require.NoError(t, store.Add(ctx, domain.QueryRecord{ID: "1", Query: "auth", CreatedAt: time.Now()}))

	require.NoError(t, store.Clear(ctx))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
