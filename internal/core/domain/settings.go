package domain

import (
	"fmt"
	"time"
)

// SelectionReset decides where the selection lands when a new candidate list arrives.
type SelectionReset string

// Selection reset variants.
const (
	// SelectFirst selects item 0 when the list is non-empty.
	SelectFirst SelectionReset = "first"
	// SelectNone leaves nothing selected.
	SelectNone SelectionReset = "none"
)

// SubmitPolicy decides what selecting a candidate does.
type SubmitPolicy string

// Submit policy variants.
const (
	// SubmitDirect redirects to documents directly, resolving suggestions first
	// and falling back to the results page.
	SubmitDirect SubmitPolicy = "direct"
	// SubmitResultsPage always navigates to the results page.
	SubmitResultsPage SubmitPolicy = "results"
)

// HighlightPolicy selects the text highlighting algorithm.
type HighlightPolicy string

// Highlight policy variants.
const (
	// HighlightMultiTerm marks every occurrence of every query term.
	HighlightMultiTerm HighlightPolicy = "multi"
	// HighlightPrefix emphasises the completion after an already-typed prefix.
	HighlightPrefix HighlightPolicy = "prefix"
)

// IsValid returns true if the variant is recognised.
func (r SelectionReset) IsValid() bool {
	return r == SelectFirst || r == SelectNone
}

// IsValid returns true if the variant is recognised.
func (p SubmitPolicy) IsValid() bool {
	return p == SubmitDirect || p == SubmitResultsPage
}

// IsValid returns true if the variant is recognised.
func (p HighlightPolicy) IsValid() bool {
	return p == HighlightMultiTerm || p == HighlightPrefix
}

// BackendSettings locate and parameterise the search backend.
type BackendSettings struct {
	// Endpoint is the documents/results endpoint.
	Endpoint string

	// SuggestEndpoint, when set, switches the widget to suggestion mode.
	SuggestEndpoint string

	// ResultKey selects result.<key> in the backend response.
	ResultKey string

	// Parameters are extra key/value pairs forwarded verbatim on every request.
	Parameters map[string]string

	// Timeout bounds each HTTP request. Zero means the client default.
	Timeout time.Duration

	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64

	// APIToken is sent as a bearer token when set.
	APIToken string
}

// WidgetSettings configure the inline search widget.
type WidgetSettings struct {
	Debounce        time.Duration
	BlurGrace       time.Duration
	MinQueryLength  int
	SelectionReset  SelectionReset
	SubmitPolicy    SubmitPolicy
	HighlightPolicy HighlightPolicy
}

// PageSettings configure the faceted results page.
type PageSettings struct {
	// FacetVisibleLimit caps visible values per collapsed facet, selected included.
	FacetVisibleLimit int
}

// Settings aggregates all configurable behaviour.
type Settings struct {
	Backend        BackendSettings
	Widget         WidgetSettings
	Page           PageSettings
	HistoryEnabled bool
}

// Default values.
const (
	DefaultDebounce          = 300 * time.Millisecond
	DefaultBlurGrace         = 150 * time.Millisecond
	DefaultTimeout           = 10 * time.Second
	DefaultMinQueryLength    = 2
	DefaultFacetVisibleLimit = 5
)

// DefaultSettings returns settings with every default applied and no backend.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendSettings{
			Parameters: map[string]string{},
			Timeout:    DefaultTimeout,
		},
		Widget: WidgetSettings{
			Debounce:        DefaultDebounce,
			BlurGrace:       DefaultBlurGrace,
			MinQueryLength:  DefaultMinQueryLength,
			SelectionReset:  SelectFirst,
			SubmitPolicy:    SubmitDirect,
			HighlightPolicy: HighlightMultiTerm,
		},
		Page: PageSettings{
			FacetVisibleLimit: DefaultFacetVisibleLimit,
		},
		HistoryEnabled: true,
	}
}

// SuggestMode reports whether the widget fetches suggestions rather than documents.
func (s BackendSettings) SuggestMode() bool {
	return s.SuggestEndpoint != ""
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.Backend.Endpoint == "" {
		return fmt.Errorf("%w: backend.endpoint is required", ErrNotConfigured)
	}
	if s.Backend.ResultKey == "" {
		return fmt.Errorf("%w: backend.result_key is required", ErrNotConfigured)
	}
	if !s.Widget.SelectionReset.IsValid() {
		return fmt.Errorf("%w: widget.selection_reset %q", ErrInvalidInput, s.Widget.SelectionReset)
	}
	if !s.Widget.SubmitPolicy.IsValid() {
		return fmt.Errorf("%w: widget.submit_policy %q", ErrInvalidInput, s.Widget.SubmitPolicy)
	}
	if !s.Widget.HighlightPolicy.IsValid() {
		return fmt.Errorf("%w: widget.highlight_policy %q", ErrInvalidInput, s.Widget.HighlightPolicy)
	}
	if s.Widget.MinQueryLength < 1 {
		return fmt.Errorf("%w: widget.min_query_length must be at least 1", ErrInvalidInput)
	}
	if s.Page.FacetVisibleLimit < 0 {
		return fmt.Errorf("%w: page.facet_visible_limit must not be negative", ErrInvalidInput)
	}
	return nil
}
