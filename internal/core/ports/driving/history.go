package driving

import (
	"context"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// HistoryService records and lists submitted queries.
type HistoryService interface {
	// Record stores a submitted query. It is a no-op when history is disabled.
	Record(ctx context.Context, query string, source domain.QuerySource, resultCount int) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Clear removes all history.
	Clear(ctx context.Context) error
}
