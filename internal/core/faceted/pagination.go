package faceted

import (
	"fmt"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// Pagination is the renderable page control. Previous and Next are disabled
// at the boundaries rather than hidden.
type Pagination struct {
	Show        bool
	Current     int
	Count       int
	HasPrevious bool
	HasNext     bool
	Label       string
	Previous    State
	Next        State
}

// NewPagination computes the page control from backend paging. The current
// page falls back to the state's page when the backend does not report one.
func NewPagination(paging domain.Paging, state State) Pagination {
	count := paging.PageCount
	if count < 1 {
		count = 1
	}
	current := paging.CurrentPage
	if current < 1 {
		current = state.Page
	}
	if current < 1 {
		current = 1
	}
	if current > count {
		count = current
	}

	p := Pagination{
		Show:        count > 1,
		Current:     current,
		Count:       count,
		HasPrevious: current > 1,
		HasNext:     current < count,
		Label:       fmt.Sprintf("Page %d of %d", current, count),
		Previous:    state.WithPage(current),
		Next:        state.WithPage(current),
	}
	if p.HasPrevious {
		p.Previous = state.WithPage(current - 1)
	}
	if p.HasNext {
		p.Next = state.WithPage(current + 1)
	}
	return p
}
