package interaction

import "github.com/custodia-labs/qsc-search/internal/core/domain"

// NoSelection is the index when nothing is selected.
const NoSelection = -1

// Selection tracks the highlighted row of a list of n items.
// The index is always in [-1, n-1]. Moving up from NoSelection lands on
// the last item, not on (index-1+n) mod n, which would be n-2.
type Selection struct {
	index  int
	n      int
	policy domain.SelectionReset
}

// NewSelection creates an empty selection that resets according to policy.
func NewSelection(policy domain.SelectionReset) Selection {
	if !policy.IsValid() {
		policy = domain.SelectFirst
	}
	return Selection{index: NoSelection, policy: policy}
}

// Index returns the selected index or NoSelection.
func (s *Selection) Index() int {
	return s.index
}

// Len returns the list length the selection is bound to.
func (s *Selection) Len() int {
	return s.n
}

// Reset binds the selection to a new list of n items.
func (s *Selection) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.n = n
	if n > 0 && s.policy == domain.SelectFirst {
		s.index = 0
		return
	}
	s.index = NoSelection
}

// Next moves down with wraparound. From NoSelection it selects the first item.
func (s *Selection) Next() {
	if s.n == 0 {
		return
	}
	s.index = (s.index + 1) % s.n
}

// Prev moves up with wraparound. From NoSelection it selects the last item.
func (s *Selection) Prev() {
	if s.n == 0 {
		return
	}
	if s.index == NoSelection {
		s.index = s.n - 1
		return
	}
	s.index = (s.index - 1 + s.n) % s.n
}

// Set selects item i. Out-of-range indexes are ignored.
// It reports whether the selection changed.
func (s *Selection) Set(i int) bool {
	if i < 0 || i >= s.n || i == s.index {
		return false
	}
	s.index = i
	return true
}

// Clear removes the selection without forgetting the list length.
func (s *Selection) Clear() {
	s.index = NoSelection
}

// Valid reports whether an item is selected.
func (s *Selection) Valid() bool {
	return s.index >= 0 && s.index < s.n
}
