package driven

import (
	"context"
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// SearchBackend is the remote search API.
// Implementations classify every failure as domain.ErrNetworkFailure,
// domain.ErrBadResponse or domain.ErrMalformedBody.
type SearchBackend interface {
	// Search queries the documents endpoint with the given parameters
	// and returns the result set found under result.<resultKey>.
	Search(ctx context.Context, params url.Values) (*domain.ResultPage, error)

	// Suggest queries the suggestion endpoint with the given parameters.
	Suggest(ctx context.Context, params url.Values) ([]domain.Suggestion, error)
}
