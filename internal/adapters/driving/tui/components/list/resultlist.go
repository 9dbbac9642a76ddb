// Package list provides the results list for the TUI results page.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/excerpt"
	"github.com/custodia-labs/qsc-search/internal/highlight"
)

// linesPerResult is title, URL and excerpt.
const linesPerResult = 3

// ResultList displays backend hits in a navigable list.
type ResultList struct {
	hits     []domain.Hit
	query    string
	selected int
	focused  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.Default()
	}

	return &ResultList{
		styles:  s,
		focused: true,
		width:   80,
		height:  12,
	}
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := max(r.height/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.hits))

	blocks := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		blocks = append(blocks, r.renderHit(i, r.hits[i]))
	}
	return strings.Join(blocks, "\n")
}

// renderHit formats one hit: highlighted title, URL, excerpt.
func (r *ResultList) renderHit(index int, hit domain.Hit) string {
	indicator := "  "
	if index == r.selected && r.focused {
		indicator = "› "
	}

	title := truncate(hit.Document.DisplayTitle(), max(r.width-8, 10))
	var titleLine string
	if index == r.selected && r.focused {
		titleLine = r.styles.Selected.Render(indicator + title)
	} else {
		titleLine = indicator + highlight.Render(
			highlight.MultiTerm(r.query, title), r.styles.Mark,
		)
	}

	urlLine := "    " + r.styles.Link.Render(truncate(hit.Document.URL, max(r.width-6, 10)))

	desc := excerpt.Summarize(excerpt.PlainText(hit.Document.Description), max(r.width-6, 20))
	descLine := "    " + highlight.Render(highlight.MultiTerm(r.query, desc), r.styles.Mark)

	return fmt.Sprintf("%s\n%s\n%s", titleLine, urlLine, r.styles.Muted.Render(descLine))
}

// SetHits replaces the list and selects the first hit.
func (r *ResultList) SetHits(hits []domain.Hit, query string) {
	r.hits = hits
	r.query = query
	r.selected = 0
}

// Hits returns the current hits.
func (r *ResultList) Hits() []domain.Hit {
	return r.hits
}

// Selected returns the index of the selected hit.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.hits) {
		r.selected = index
	}
}

// SelectedHit returns the currently selected hit, or nil if none.
func (r *ResultList) SelectedHit() *domain.Hit {
	if len(r.hits) == 0 || r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetFocused marks whether the list owns the cursor.
func (r *ResultList) SetFocused(focused bool) {
	r.focused = focused
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of hits.
func (r *ResultList) Count() int {
	return len(r.hits)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.hits) == 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
