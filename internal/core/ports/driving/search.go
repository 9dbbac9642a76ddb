package driving

import (
	"context"
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Candidates fetches the live dropdown candidates for a query: suggestions
	// when a suggestion endpoint is configured, documents otherwise.
	Candidates(ctx context.Context, query string) ([]domain.Candidate, error)

	// Resolve turns a suggestion into a destination: the first matching
	// document, or the results page for the suggestion text when none matches.
	Resolve(ctx context.Context, suggestion string) (domain.Resolution, error)

	// Page fetches a full faceted result set. Params are sent as-is, so
	// callers merge ExtraParameters themselves (faceted.State.BackendParams).
	Page(ctx context.Context, params url.Values) (*domain.ResultPage, error)

	// ExtraParameters returns the configured parameters forwarded on every request.
	ExtraParameters() url.Values
}
