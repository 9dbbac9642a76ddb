// Package search provides the live search widget view for the TUI: a query
// box with a dropdown of candidates that follows the input as it is typed.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/dropdown"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/debounce"
)

// titleRows is the number of rows above the query box.
const titleRows = 2

var errNoSearchService = fmt.Errorf("%w: search widget has no search service", domain.ErrNotConfigured)

// View is the search widget.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Box
	dropdown  *dropdown.Dropdown
	statusbar *status.Bar

	ctrl      *interaction.Controller
	debouncer *debounce.Debouncer[string]
	debounced chan string
	debounceO []debounce.Option
	blurGrace time.Duration

	searchService driving.SearchService
	ctx           context.Context

	width  int
	height int
	ready  bool
}

// NewView creates the widget view. Options are passed to the debouncer.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	settings domain.WidgetSettings,
	opts ...debounce.Option,
) *View {
	if s == nil {
		s = styles.Default()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		input:         input.New(s, input.WithPlaceholder("Search documentation…")),
		dropdown:      dropdown.New(s, settings.HighlightPolicy),
		statusbar:     status.NewBar(s, km.WidgetHelp()),
		ctrl:          interaction.NewController(interaction.OptionsFromSettings(settings)),
		debounced:     make(chan string, 1),
		debounceO:     opts,
		blurGrace:     settings.BlurGrace,
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
	v.debouncer = debounce.New(settings.Debounce, v.deliver, opts...)
	// The input starts focused; terminals that never report focus rely on this.
	v.ctrl.Focus()
	return v
}

// deliver hands a settled query to the UI loop. Only the latest value matters,
// so an undelivered older one is replaced.
func (v *View) deliver(q string) {
	for {
		select {
		case v.debounced <- q:
			return
		default:
			select {
			case <-v.debounced:
			default:
			}
		}
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor and the debounce listener.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.listen())
}

// listen waits for the next settled query.
func (v *View) listen() tea.Cmd {
	ch, ctx := v.debounced, v.ctx
	return func() tea.Msg {
		select {
		case q := <-ch:
			return messages.QueryDebounced{Query: q}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages for the widget.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.FocusMsg:
		v.ctrl.Focus()
		v.sync()
		return v, v.input.Focus()

	case tea.BlurMsg:
		token := v.ctrl.Blur()
		return v, tea.Tick(v.blurGrace, func(time.Time) tea.Msg {
			return messages.BlurGraceElapsed{Token: token}
		})

	case messages.BlurGraceElapsed:
		v.ctrl.BlurGraceElapsed(msg.Token)
		v.sync()
		return v, nil

	case messages.QueryDebounced:
		return v, tea.Batch(v.listen(), v.queryDebounced(msg.Query))

	case messages.CandidatesFetched:
		return v, v.fetchCompleted(msg.Result)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v.handleMouseMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	cmd, _ := v.input.Update(msg)
	return v, cmd
}

// queryDebounced starts a fetch for a settled query.
func (v *View) queryDebounced(q string) tea.Cmd {
	req, ok := v.ctrl.QueryDebounced(q)
	v.sync()
	if !ok {
		v.statusbar.Clear()
		return nil
	}
	return tea.Batch(v.statusbar.SetState(status.StateSearching), v.fetch(req))
}

// fetch runs a candidate request off the UI loop.
func (v *View) fetch(req interaction.FetchRequest) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		res := interaction.FetchResult{Epoch: req.Epoch}
		if svc == nil {
			res.Err = errNoSearchService
		} else {
			res.Candidates, res.Err = svc.Candidates(ctx, req.Query)
		}
		return messages.CandidatesFetched{Result: res}
	}
}

// fetchCompleted commits a fetch result; stale results change nothing.
func (v *View) fetchCompleted(res interaction.FetchResult) tea.Cmd {
	if !v.ctrl.FetchCompleted(res) {
		return nil
	}
	v.sync()
	if msg := v.ctrl.Error(); msg != "" {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg)
		return nil
	}
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	return nil
}

// handleKeyMsg processes keyboard input. Letters always go to the input,
// so only arrows and ctrl+p/ctrl+n move the selection.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		v.ctrl.Key(interaction.KeyUp)
		v.sync()
		return v, nil
	case tea.KeyDown, tea.KeyCtrlN:
		v.ctrl.Key(interaction.KeyDown)
		v.sync()
		return v, nil
	case tea.KeyEnter:
		return v, v.submitted(v.ctrl.Submit())
	case tea.KeyEsc:
		v.ctrl.Escape()
		v.sync()
		return v, nil
	}

	if !v.ctrl.Focused() {
		v.ctrl.Focus()
	}
	cmd, changed := v.input.Update(msg)
	if changed {
		v.ctrl.SetQuery(v.input.Value())
		v.debouncer.Set(v.input.Value())
	}
	return v, cmd
}

// handleMouseMsg maps terminal mouse events onto hover, click and outside press.
func (v *View) handleMouseMsg(msg tea.MouseMsg) (*View, tea.Cmd) {
	row := -1
	if v.ctrl.Visible() {
		row = v.dropdown.RowAt(msg.Y - v.dropdownTop())
	}
	inInput := msg.Y >= titleRows && msg.Y < v.dropdownTop()

	//nolint:exhaustive // handling only relevant mouse actions
	switch msg.Action {
	case tea.MouseActionMotion:
		if row >= 0 {
			v.ctrl.Hover(row)
			v.sync()
		}
		return v, nil

	case tea.MouseActionPress:
		//nolint:exhaustive // handling only relevant buttons
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.ctrl.Key(interaction.KeyUp)
		case tea.MouseButtonWheelDown:
			v.ctrl.Key(interaction.KeyDown)
		case tea.MouseButtonLeft:
			switch {
			case inInput:
				v.ctrl.Focus()
			case row < 0:
				v.ctrl.PointerDownOutside()
			}
		}
		v.sync()
		return v, nil

	case tea.MouseActionRelease:
		if row >= 0 {
			return v, v.submitted(v.ctrl.Click(row))
		}
	}
	return v, nil
}

// submitted turns a controller action into a message for the App.
func (v *View) submitted(a interaction.Action) tea.Cmd {
	v.sync()
	if a.Kind == interaction.ActionNone {
		return nil
	}
	msg := messages.Submitted{
		Action:     a,
		Query:      strings.TrimSpace(v.ctrl.Query()),
		Candidates: len(v.ctrl.Candidates()),
	}
	return func() tea.Msg { return msg }
}

// sync pushes controller state into the dropdown.
func (v *View) sync() {
	if !v.ctrl.Visible() {
		v.dropdown.Set(nil, interaction.NoSelection, v.ctrl.Query())
		return
	}
	v.dropdown.Set(v.ctrl.Candidates(), v.ctrl.Selected(), v.ctrl.Query())
}

// dropdownTop is the first screen row of the dropdown.
func (v *View) dropdownTop() int {
	return titleRows + v.input.Height()
}

// View renders the widget.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("qsc"))
	b.WriteString(v.styles.Muted.Render("  search as you type"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	if dd := v.dropdown.View(); dd != "" {
		b.WriteString("\n")
		b.WriteString(dd)
	}

	content := b.String()
	gap := v.height - lipgloss.Height(content) - 1
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + "\n" + v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.dropdown.SetWidth(width)
	v.dropdown.SetMaxRows(max(height-titleRows-v.input.Height()-3, 1))
	v.statusbar.SetWidth(width)
}

// SetSettings applies reloaded widget settings without losing the current list.
func (v *View) SetSettings(settings domain.WidgetSettings) {
	v.ctrl.SetOptions(interaction.OptionsFromSettings(settings))
	v.dropdown.SetPolicy(settings.HighlightPolicy)
	v.blurGrace = settings.BlurGrace
	if settings.Debounce != v.debouncer.Delay() {
		v.debouncer.Close()
		v.debouncer = debounce.New(settings.Debounce, v.deliver, v.debounceO...)
	}
	v.sync()
}

// Reset clears the query and the dropdown.
func (v *View) Reset() {
	v.debouncer.Cancel()
	v.input.Reset()
	v.ctrl.QueryDebounced("")
	v.statusbar.Clear()
	v.sync()
}

// SetNotice shows an action outcome in the status bar.
func (v *View) SetNotice(message string, isErr bool) {
	if isErr {
		v.statusbar.SetState(status.StateError)
	} else {
		v.statusbar.SetState(status.StateReady)
	}
	v.statusbar.SetMessage(message)
}

// Close stops the debouncer.
func (v *View) Close() {
	v.debouncer.Close()
}

// Controller exposes the widget state machine.
func (v *View) Controller() *interaction.Controller {
	return v.ctrl
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// Ready reports whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}
