package faceted

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// ErrNoNavigator is returned by actions when the page has no navigator.
var ErrNoNavigator = errors.New("faceted: navigator is required")

// Request asks the caller to fetch Params and report back with Epoch.
type Request struct {
	Epoch  uint64
	State  State
	Params url.Values
}

// Response is the outcome of a Request.
type Response struct {
	Epoch  uint64
	Result *domain.ResultPage
	Err    error
}

// Page is the results page controller. Like interaction.Controller it does
// no I/O: Sync returns the fetch to perform and Complete commits its result.
// Not safe for concurrent use.
type Page struct {
	nav   driven.Navigator
	extra url.Values
	limit int

	epoch    interaction.Epoch
	state    State
	result   *domain.ResultPage
	loading  bool
	failed   bool
	expanded map[string]bool
}

// NewPage creates a results page controller. extra is sent with every request;
// limit caps visible values per collapsed facet.
func NewPage(nav driven.Navigator, extra url.Values, limit int) *Page {
	if limit < 0 {
		limit = domain.DefaultFacetVisibleLimit
	}
	return &Page{
		nav:      nav,
		extra:    extra,
		limit:    limit,
		state:    State{Page: 1},
		expanded: make(map[string]bool),
	}
}

// Sync re-derives the state from the current location. Call it on mount and
// after every navigation. Without a query there is nothing to fetch and the
// page shows its empty state.
func (p *Page) Sync() (Request, bool) {
	var loc *url.URL
	if p.nav != nil {
		loc = p.nav.Location()
	}
	raw := ""
	if loc != nil {
		raw = loc.RawQuery
	}
	return p.SyncState(Parse(raw))
}

// SyncState is Sync for an already parsed state.
func (p *Page) SyncState(st State) (Request, bool) {
	p.state = st
	epoch := p.epoch.Next()
	p.failed = false

	if st.Query == "" {
		p.result = nil
		p.loading = false
		p.expanded = make(map[string]bool)
		return Request{}, false
	}

	p.loading = true
	return Request{Epoch: epoch, State: st, Params: st.BackendParams(p.extra)}, true
}

// Complete commits a fetch result if its epoch is current. A failure shows
// the empty results state and is logged. It reports whether the response
// was applied.
func (p *Page) Complete(resp Response) bool {
	if !p.epoch.IsCurrent(resp.Epoch) {
		logger.Debug("discarding results page response for epoch %d (current %d)", resp.Epoch, p.epoch.Current())
		return false
	}
	p.loading = false
	p.expanded = make(map[string]bool)

	if resp.Err != nil {
		logger.Failure("results page", domain.ErrorKind(resp.Err), resp.Err)
		p.failed = true
		p.result = domain.EmptyResultPage()
		return true
	}

	p.failed = false
	p.result = resp.Result
	if p.result == nil {
		p.result = domain.EmptyResultPage()
	}
	return true
}

// ToggleFilter flips a filter and pushes the resulting URL.
func (p *Page) ToggleFilter(f Filter) error {
	return p.push(p.state.ToggleFilter(f))
}

// ChangeSort selects a sort order and pushes the resulting URL.
func (p *Page) ChangeSort(id string) error {
	return p.push(p.state.WithSort(id))
}

// ChangePage moves to page n and pushes the resulting URL.
func (p *Page) ChangePage(n int) error {
	return p.push(p.state.WithPage(n))
}

// Search starts a new query on the results page and pushes the resulting URL.
func (p *Page) Search(q string) error {
	return p.push(p.state.WithQuery(q))
}

// ToggleExpanded flips a facet between collapsed and expanded.
func (p *Page) ToggleExpanded(facetID string) {
	p.expanded[facetID] = !p.expanded[facetID]
}

func (p *Page) push(next State) error {
	if p.nav == nil {
		return ErrNoNavigator
	}
	target := next.URL(p.nav.Location())
	if err := p.nav.Push(target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	return nil
}

// State returns the state parsed at the last Sync.
func (p *Page) State() State {
	return p.state
}

// Result returns the committed result set, nil before the first fetch or
// without a query.
func (p *Page) Result() *domain.ResultPage {
	return p.result
}

// Loading reports whether a fetch for the current epoch is outstanding.
func (p *Page) Loading() bool {
	return p.loading
}

// Failed reports whether the last committed fetch failed.
func (p *Page) Failed() bool {
	return p.failed
}

// Facets returns the facet views for the committed result.
func (p *Page) Facets() []FacetView {
	return Facets(p.result, p.state, p.expanded, p.limit)
}

// Sorts returns the sort views for the committed result.
func (p *Page) Sorts() []SortView {
	return Sorts(p.result, p.state)
}

// Pagination returns the page control for the committed result.
func (p *Page) Pagination() Pagination {
	if p.result == nil {
		return NewPagination(domain.DefaultPaging(), p.state)
	}
	return NewPagination(p.result.Paging, p.state)
}

// Summary returns the result count line, e.g. `3 results found for "api"`.
func (p *Page) Summary() string {
	if p.state.Query == "" {
		return "Enter a query to search"
	}
	if p.loading {
		return "Searching…"
	}
	total := 0
	if p.result != nil {
		total = p.result.Total
		if total == 0 {
			total = len(p.result.Documents)
		}
	}
	switch total {
	case 0:
		return fmt.Sprintf("No results found for %q", p.state.Query)
	case 1:
		return fmt.Sprintf("1 result found for %q", p.state.Query)
	default:
		return fmt.Sprintf("%d results found for %q", total, p.state.Query)
	}
}

// SetLimit applies a reloaded facet visible limit.
func (p *Page) SetLimit(limit int) {
	if limit >= 0 {
		p.limit = limit
	}
}
