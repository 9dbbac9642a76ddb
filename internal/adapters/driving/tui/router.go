package tui

import (
	"errors"
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

// ErrNilLocation is returned when pushing a nil URL.
var ErrNilLocation = errors.New("tui: location is required")

// Router is the TUI's location and history stack. It stands in for the
// browser location: views read it through Location and change it through
// Push, and the App re-derives the active view whenever Version moves.
type Router struct {
	entries []url.URL
	index   int
	version uint64
}

var _ driven.Navigator = (*Router)(nil)

// NewRouter creates a router positioned at start, or at the widget route
// when start is nil.
func NewRouter(start *url.URL) *Router {
	first := url.URL{Path: messages.RouteWidget}
	if start != nil {
		first = *start
	}
	if first.Path == "" {
		first.Path = messages.RouteWidget
	}
	return &Router{entries: []url.URL{first}}
}

// Location returns a copy of the current URL.
func (r *Router) Location() *url.URL {
	u := r.entries[r.index]
	return &u
}

// Push makes u the current location. Forward entries are discarded.
func (r *Router) Push(u *url.URL) error {
	if u == nil {
		return ErrNilLocation
	}
	next := *u
	if next.Path == "" {
		next.Path = r.entries[r.index].Path
	}
	r.entries = append(r.entries[:r.index+1], next)
	r.index++
	r.version++
	return nil
}

// Back moves to the previous entry. It reports false at the first entry.
func (r *Router) Back() bool {
	if r.index == 0 {
		return false
	}
	r.index--
	r.version++
	return true
}

// Forward moves to the next entry. It reports false at the last entry.
func (r *Router) Forward() bool {
	if r.index >= len(r.entries)-1 {
		return false
	}
	r.index++
	r.version++
	return true
}

// Version increases on every location change.
func (r *Router) Version() uint64 {
	return r.version
}

// Len returns the number of history entries.
func (r *Router) Len() int {
	return len(r.entries)
}
