package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Used in tests and when running with --no-history persistence.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.QueryRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Add stores a query record.
func (s *HistoryStore) Add(_ context.Context, record domain.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.QueryRecord, len(s.records))
	copy(out, s.records)
	// Stable on insertion order so equal timestamps keep the later insert first after reversal.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear removes all records.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
