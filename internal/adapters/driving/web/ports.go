// Package web serves the faceted results page and the suggestion endpoint
// over HTTP. Pages are rendered server-side with html/template; every facet,
// sort and page control is a plain link to the next location.
package web

import (
	"errors"

	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
)

// ErrMissingSearchService is returned by NewServer without a search service.
var ErrMissingSearchService = errors.New("web: search service is required")

// Ports are the services behind the handlers. History is optional.
type Ports struct {
	Search  driving.SearchService
	History driving.HistoryService
}

// Validate reports a missing search service.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
