package driven

import (
	"context"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// HistoryStore persists submitted queries.
type HistoryStore interface {
	// Add records a query.
	Add(ctx context.Context, record domain.QueryRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}
