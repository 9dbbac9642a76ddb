package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of records listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService records submitted queries.
type HistoryService struct {
	store   driven.HistoryStore
	enabled bool
	now     func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore, enabled bool) *HistoryService {
	return &HistoryService{
		store:   store,
		enabled: enabled,
		now:     time.Now,
	}
}

// Record stores a submitted query.
func (s *HistoryService) Record(
	ctx context.Context,
	query string,
	source domain.QuerySource,
	resultCount int,
) error {
	if !s.enabled || s.store == nil {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	record := domain.QueryRecord{
		ID:          uuid.New().String(),
		Query:       query,
		Source:      source,
		ResultCount: resultCount,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Add(ctx, record); err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	logger.Debug("recorded %s query %q", source, query)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}

// Clear removes all history.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}
