// Package tui is the interactive terminal front end: the search-as-you-type
// widget and the faceted results page, driven by a URL-style router.
package tui

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
)

var (
	// ErrInvalidPorts wraps every Validate failure.
	ErrInvalidPorts = errors.New("tui: invalid ports")
	// ErrMissingSearchService means no candidates or pages can be fetched.
	ErrMissingSearchService = errors.New("tui: search service is required")
	// ErrMissingResultActionService means document candidates cannot be opened.
	ErrMissingResultActionService = errors.New("tui: result action service is required")
)

// Ports are the services the App hands to its views.
type Ports struct {
	Search       driving.SearchService
	History      driving.HistoryService // optional
	ResultAction driving.ResultActionService
}

// NewPorts bundles the services for NewApp.
func NewPorts(
	search driving.SearchService,
	history driving.HistoryService,
	resultAction driving.ResultActionService,
) *Ports {
	return &Ports{Search: search, History: history, ResultAction: resultAction}
}

// Validate checks the required services are present.
func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrInvalidPorts
	case p.Search == nil:
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingSearchService)
	case p.ResultAction == nil:
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingResultActionService)
	}
	return nil
}
