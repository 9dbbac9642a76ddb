// Package results provides the faceted results page view for the TUI.
// The page state lives in the router location; every control pushes a new
// location and the view re-derives itself when the App calls Sync.
package results

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
)

// facetColumnWidth is the width of the facet sidebar.
const facetColumnWidth = 30

var errNoSearchService = fmt.Errorf("%w: results page has no search service", domain.ErrNotConfigured)

// Pane identifies which column owns the cursor.
type Pane int

const (
	// PaneResults is the result list.
	PaneResults Pane = iota
	// PaneFacets is the facet sidebar.
	PaneFacets
)

// facetEntry is one cursor stop in the sidebar: a value or a "Show more" control.
type facetEntry struct {
	facetID string
	value   *faceted.FacetValueView
}

// View is the results page.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Box
	list      *list.ResultList
	statusbar *status.Bar

	page          *faceted.Page
	searchService driving.SearchService
	ctx           context.Context

	pane        Pane
	editing     bool
	facetCursor int

	width  int
	height int
}

// NewView creates the results view. nav is the location the page reads and
// pushes; limit caps visible values per collapsed facet.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	nav driven.Navigator,
	limit int,
) *View {
	if s == nil {
		s = styles.Default()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	in := input.New(s, input.WithLabel("Search: "), input.WithPlaceholder("Refine the query…"))
	in.Blur()

	var extra url.Values
	if searchService != nil {
		extra = searchService.ExtraParameters()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         in,
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km.ResultsHelp()),
		page:          faceted.NewPage(nav, extra, limit),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Sync re-derives the page from the current location and fetches it.
func (v *View) Sync() tea.Cmd {
	req, ok := v.page.Sync()
	v.input.SetValue(v.page.State().Query)
	v.list.SetHits(nil, "")
	v.facetCursor = 0
	if !ok {
		v.statusbar.Clear()
		return nil
	}
	return tea.Batch(v.statusbar.SetState(status.StateSearching), v.fetch(req))
}

// fetch runs a results request off the UI loop.
func (v *View) fetch(req faceted.Request) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		resp := faceted.Response{Epoch: req.Epoch}
		if svc == nil {
			resp.Err = errNoSearchService
		} else {
			resp.Result, resp.Err = svc.Page(ctx, req.Params)
		}
		return messages.ResultsFetched{Response: resp}
	}
}

// Update handles messages for the results page.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ResultsFetched:
		return v, v.complete(msg.Response)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		//nolint:exhaustive // only the wheel scrolls the list
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.list.MoveUp()
		case tea.MouseButtonWheelDown:
			v.list.MoveDown()
		}
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	if v.editing {
		cmd, _ := v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// complete commits a fetch. A committed success is announced for history.
func (v *View) complete(resp faceted.Response) tea.Cmd {
	if !v.page.Complete(resp) {
		return nil
	}
	st := v.page.State()
	v.list.SetHits(v.page.Result().Documents, st.Query)
	v.clampFacetCursor()

	if v.page.Failed() {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(interaction.FailedMessage)
		return nil
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")

	shown := messages.ResultsShown{Query: st.Query, Total: v.page.Result().Total}
	return func() tea.Msg { return shown }
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // flat key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditingKey(msg)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.NewSearch):
		v.editing = true
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.BackRequested{} }

	case keymap.Matches(key, v.keymap.Pane):
		v.togglePane()
		return v, nil

	case keymap.Matches(key, v.keymap.Sort):
		return v, v.cycleSort()

	case keymap.Matches(key, v.keymap.NextPage):
		if p := v.page.Pagination(); p.HasNext {
			return v, v.navigate(v.page.ChangePage(p.Current + 1))
		}
		return v, nil

	case keymap.Matches(key, v.keymap.PrevPage):
		if p := v.page.Pagination(); p.HasPrevious {
			return v, v.navigate(v.page.ChangePage(p.Current - 1))
		}
		return v, nil
	}

	if v.pane == PaneFacets {
		return v, v.handleFacetKey(key)
	}
	return v, v.handleResultKey(key)
}

func (v *View) handleEditingKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		v.editing = false
		v.input.Blur()
		q := strings.TrimSpace(v.input.Value())
		if q == "" {
			v.input.SetValue(v.page.State().Query)
			return v, nil
		}
		return v, v.navigate(v.page.Search(q))
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		v.input.SetValue(v.page.State().Query)
		return v, nil
	}
	cmd, _ := v.input.Update(msg)
	return v, cmd
}

func (v *View) handleResultKey(key string) tea.Cmd {
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Open):
		if hit := v.list.SelectedHit(); hit != nil && hit.Document.URL != "" {
			u := hit.Document.URL
			return func() tea.Msg { return messages.OpenRequested{URL: u} }
		}
	case keymap.Matches(key, v.keymap.Copy):
		if hit := v.list.SelectedHit(); hit != nil && hit.Document.URL != "" {
			u := hit.Document.URL
			return func() tea.Msg { return messages.CopyRequested{URL: u} }
		}
	}
	return nil
}

func (v *View) handleFacetKey(key string) tea.Cmd {
	entries := v.facetEntries()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.facetCursor > 0 {
			v.facetCursor--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.facetCursor < len(entries)-1 {
			v.facetCursor++
		}
	case keymap.Matches(key, v.keymap.Toggle):
		if v.facetCursor >= len(entries) {
			return nil
		}
		e := entries[v.facetCursor]
		if e.value == nil {
			v.page.ToggleExpanded(e.facetID)
			v.clampFacetCursor()
			return nil
		}
		return v.navigate(v.page.ToggleFilter(e.value.Filter))
	}
	return nil
}

// cycleSort selects the option after the current one.
func (v *View) cycleSort() tea.Cmd {
	sorts := v.page.Sorts()
	if len(sorts) == 0 || v.page.State().Query == "" {
		return nil
	}
	next := 0
	for i, s := range sorts {
		if s.Selected {
			next = (i + 1) % len(sorts)
			break
		}
	}
	return v.navigate(v.page.ChangeSort(sorts[next].ID))
}

// navigate reports a failed push. A successful push is picked up by the
// App through the router, which calls Sync.
func (v *View) navigate(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
}

func (v *View) togglePane() {
	if v.pane == PaneResults {
		v.pane = PaneFacets
	} else {
		v.pane = PaneResults
	}
	v.list.SetFocused(v.pane == PaneResults)
}

func (v *View) facetEntries() []facetEntry {
	var entries []facetEntry
	for _, f := range v.page.Facets() {
		for i := range f.Values {
			entries = append(entries, facetEntry{facetID: f.ID, value: &f.Values[i]})
		}
		if f.ToggleLabel != "" {
			entries = append(entries, facetEntry{facetID: f.ID})
		}
	}
	return entries
}

func (v *View) clampFacetCursor() {
	n := len(v.facetEntries())
	if v.facetCursor >= n {
		v.facetCursor = max(n-1, 0)
	}
}

// View renders the results page.
func (v *View) View() string {
	header := v.styles.Title.Render("qsc") + "  " + v.input.View()
	summary := v.styles.Subtitle.Render(v.page.Summary())

	var body string
	if v.page.State().Query != "" && !v.page.Loading() {
		left := lipgloss.NewStyle().Width(facetColumnWidth).Render(v.renderFacets())
		right := v.list.View()
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
		body = v.renderSorts() + "\n\n" + body
		if p := v.renderPagination(); p != "" {
			body += "\n\n" + p
		}
	}

	content := header + "\n" + summary
	if body != "" {
		content += "\n\n" + body
	}
	gap := v.height - lipgloss.Height(content) - 1
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + "\n" + v.statusbar.View()
}

func (v *View) renderSorts() string {
	parts := []string{v.styles.Muted.Render("Sort:")}
	for _, s := range v.page.Sorts() {
		if s.Selected {
			parts = append(parts, v.styles.Selected.Render(" "+s.Name+" "))
		} else {
			parts = append(parts, v.styles.Normal.Render(s.Name))
		}
	}
	return strings.Join(parts, "  ")
}

func (v *View) renderFacets() string {
	var lines []string
	cursor := 0
	for _, f := range v.page.Facets() {
		lines = append(lines, v.styles.Facet.Render(f.Name))
		for _, val := range f.Values {
			box := "[ ]"
			if val.Selected {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s (%d)", box, val.Value, val.Count)
			lines = append(lines, v.renderFacetLine(line, cursor))
			cursor++
		}
		if f.ToggleLabel != "" {
			lines = append(lines, v.renderFacetLine("    "+f.ToggleLabel, cursor))
			cursor++
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderFacetLine(line string, index int) string {
	if v.pane == PaneFacets && index == v.facetCursor {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderPagination keeps Previous and Next in place and greys them out at the bounds.
func (v *View) renderPagination() string {
	p := v.page.Pagination()
	if !p.Show {
		return ""
	}
	prev := v.styles.Link.Render("‹ Previous")
	if !p.HasPrevious {
		prev = v.styles.Disabled.Render("‹ Previous")
	}
	next := v.styles.Link.Render("Next ›")
	if !p.HasNext {
		next = v.styles.Disabled.Render("Next ›")
	}
	return prev + "   " + v.styles.Normal.Render(p.Label) + "   " + next
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width - 6)
	v.list.SetDimensions(max(width-facetColumnWidth-2, 20), max(height-12, 3))
	v.statusbar.SetWidth(width)
}

// SetNotice shows an action outcome in the status bar.
func (v *View) SetNotice(message string, isErr bool) {
	if isErr {
		v.statusbar.SetState(status.StateError)
	} else {
		v.statusbar.SetState(status.StateResults)
	}
	v.statusbar.SetMessage(message)
}

// SetLimit applies a reloaded facet limit.
func (v *View) SetLimit(limit int) {
	v.page.SetLimit(limit)
	v.clampFacetCursor()
}

// Page exposes the page controller.
func (v *View) Page() *faceted.Page {
	return v.page
}

// Editing reports whether the query box has the cursor.
func (v *View) Editing() bool {
	return v.editing
}

// Pane returns the column owning the cursor.
func (v *View) Pane() Pane {
	return v.pane
}
