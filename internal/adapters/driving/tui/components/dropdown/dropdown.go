// Package dropdown renders the live candidate list under the query box.
package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/excerpt"
	"github.com/custodia-labs/qsc-search/internal/highlight"
)

// DefaultMaxRows is how many candidates are visible at once.
const DefaultMaxRows = 8

// Dropdown is a scrolling one-line-per-candidate list. It only renders:
// selection and visibility live in interaction.Controller.
type Dropdown struct {
	styles   *styles.Styles
	policy   domain.HighlightPolicy
	items    []domain.Candidate
	query    string
	selected int
	offset   int
	maxRows  int
	width    int
}

// New creates a dropdown.
func New(s *styles.Styles, policy domain.HighlightPolicy) *Dropdown {
	if s == nil {
		s = styles.Default()
	}
	return &Dropdown{
		styles:   s,
		policy:   policy,
		selected: -1,
		maxRows:  DefaultMaxRows,
		width:    60,
	}
}

// Set replaces the rendered candidates. selected may be -1.
func (d *Dropdown) Set(items []domain.Candidate, selected int, query string) {
	if !sameItems(d.items, items) {
		d.offset = 0
	}
	d.items = items
	d.selected = selected
	d.query = query
	d.ensureVisible()
}

func sameItems(a, b []domain.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].DisplayText != b[i].DisplayText {
			return false
		}
	}
	return true
}

// ensureVisible scrolls so the selected row is inside the window.
func (d *Dropdown) ensureVisible() {
	rows := d.Rows()
	if d.selected < 0 || rows == 0 {
		if d.offset > len(d.items)-rows {
			d.offset = max(0, len(d.items)-rows)
		}
		return
	}
	if d.selected < d.offset {
		d.offset = d.selected
	}
	if d.selected >= d.offset+rows {
		d.offset = d.selected - rows + 1
	}
}

// SetPolicy changes the highlight policy.
func (d *Dropdown) SetPolicy(p domain.HighlightPolicy) {
	d.policy = p
}

// SetWidth sets the outer width.
func (d *Dropdown) SetWidth(width int) {
	d.width = width
}

// SetMaxRows caps the number of visible rows.
func (d *Dropdown) SetMaxRows(n int) {
	if n < 1 {
		n = 1
	}
	d.maxRows = n
	d.ensureVisible()
}

// Rows returns the number of candidate rows currently rendered.
func (d *Dropdown) Rows() int {
	return min(len(d.items), d.maxRows)
}

// Offset returns the index of the first visible candidate.
func (d *Dropdown) Offset() int {
	return d.offset
}

// RowAt maps a line relative to the top of View to a candidate index,
// or -1 when the line holds no candidate.
func (d *Dropdown) RowAt(line int) int {
	if line < 0 || line >= d.Rows() {
		return -1
	}
	return d.offset + line
}

// View renders the visible window. It is empty without candidates.
func (d *Dropdown) View() string {
	rows := d.Rows()
	if rows == 0 {
		return ""
	}
	inner := max(d.width-4, 10)

	lines := make([]string, 0, rows)
	for i := d.offset; i < d.offset+rows; i++ {
		lines = append(lines, d.renderRow(i, inner))
	}
	return d.styles.Dropdown.Width(d.width - 2).Render(strings.Join(lines, "\n"))
}

func (d *Dropdown) renderRow(i, width int) string {
	c := d.items[i]
	text := truncate(c.DisplayText, width-2)

	if i == d.selected {
		return d.styles.Selected.Render("› " + text + strings.Repeat(" ", max(0, width-2-lipgloss.Width(text))))
	}

	row := "  " + highlight.Render(highlight.Apply(d.policy, d.query, text), d.styles.Mark)
	if c.Kind == domain.CandidateDocument && c.Match.Description != "" {
		room := width - 2 - lipgloss.Width(text) - 3
		if room > 10 {
			desc := excerpt.Summarize(excerpt.PlainText(c.Match.Description), room)
			row += d.styles.Muted.Render(" · " + desc)
		}
	}
	return row
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
