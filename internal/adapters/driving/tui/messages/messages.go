// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
)

// Route paths.
const (
	RouteWidget  = "/"
	RouteResults = "/search"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewWidget is the live search input with its dropdown.
	ViewWidget ViewType = iota
	// ViewResults is the faceted results page.
	ViewResults
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewWidget:
		return "widget"
	case ViewResults:
		return "results"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewForPath maps a route path to its view.
func ViewForPath(path string) ViewType {
	if path == RouteResults {
		return ViewResults
	}
	return ViewWidget
}

// LocationChanged is sent after the router's location changed.
type LocationChanged struct {
	URL *url.URL
}

// QueryDebounced carries the input value once typing has settled.
type QueryDebounced struct {
	Query string
}

// CandidatesFetched carries a widget fetch result back to the model.
type CandidatesFetched struct {
	Result interaction.FetchResult
}

// BlurGraceElapsed fires once the blur grace delay has passed.
type BlurGraceElapsed struct {
	Token uint64
}

// Submitted carries the outcome of a widget submission.
type Submitted struct {
	Action interaction.Action
	// Query is the raw input at submission time.
	Query string
	// Candidates is the number of candidates shown at submission time.
	Candidates int
}

// Resolved carries the destination of a submitted suggestion.
type Resolved struct {
	Resolution domain.Resolution
	Err        error
}

// ResultsFetched carries a results page fetch back to the model.
type ResultsFetched struct {
	Response faceted.Response
}

// ResultsShown is sent after a successful results page fetch was committed.
type ResultsShown struct {
	Query string
	Total int
}

// OpenRequested asks the app to open a document URL.
type OpenRequested struct {
	URL string
}

// CopyRequested asks the app to copy a document URL.
type CopyRequested struct {
	URL string
}

// ActionDone reports the outcome of an open or copy.
type ActionDone struct {
	Message string
	Err     error
}

// BackRequested asks the router to go back one entry.
type BackRequested struct{}

// ConfigReloaded carries settings re-read after the config file changed.
type ConfigReloaded struct {
	Settings domain.Settings
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
