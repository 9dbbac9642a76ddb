package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// failingHistoryStore implements driven.HistoryStore and fails every write.
type failingHistoryStore struct {
	memory.HistoryStore
}

func (failingHistoryStore) Add(context.Context, domain.QueryRecord) error {
	return errors.New("disk full")
}

func TestHistoryService_Record(t *testing.T) {
	ctx := context.Background()
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, true)
	fixed := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	require.NoError(t, service.Record(ctx, "  oauth ", domain.QuerySourceWidget, 3))

	records, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "oauth", records[0].Query)
	assert.Equal(t, domain.QuerySourceWidget, records[0].Source)
	assert.Equal(t, 3, records[0].ResultCount)
	assert.Equal(t, fixed, records[0].CreatedAt)
	_, err = uuid.Parse(records[0].ID)
	assert.NoError(t, err)
}

func TestHistoryService_Disabled(t *testing.T) {
	ctx := context.Background()
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, false)

	require.NoError(t, service.Record(ctx, "oauth", domain.QuerySourceCLI, 1))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryService_EmptyQuery(t *testing.T) {
	service := NewHistoryService(memory.NewHistoryStore(), true)

	err := service.Record(context.Background(), " ", domain.QuerySourcePage, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_StoreError(t *testing.T) {
	service := NewHistoryService(&failingHistoryStore{}, true)

	err := service.Record(context.Background(), "oauth", domain.QuerySourceMCP, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestHistoryService_Clear(t *testing.T) {
	ctx := context.Background()
	service := NewHistoryService(memory.NewHistoryStore(), true)
	require.NoError(t, service.Record(ctx, "oauth", domain.QuerySourceWidget, 1))

	require.NoError(t, service.Clear(ctx))

	records, err := service.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryService_NilStore(t *testing.T) {
	service := NewHistoryService(nil, true)
	ctx := context.Background()

	assert.NoError(t, service.Record(ctx, "oauth", domain.QuerySourceWidget, 1))
	records, err := service.Recent(ctx, 5)
	assert.NoError(t, err)
	assert.Nil(t, records)
	assert.NoError(t, service.Clear(ctx))
}
