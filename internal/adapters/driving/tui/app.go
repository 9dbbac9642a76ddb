package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/debounce"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// router holds the location; seen is the router version last acted on.
	router *Router
	seen   uint64

	// widgetView is the live search widget at "/".
	widgetView *search.View

	// resultsView is the faceted results page at "/search".
	resultsView *results.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// showHelp overlays the key bindings.
	showHelp bool

	settings domain.Settings

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application positioned at start, or at the
// widget when start is nil. Options are passed to the widget's debouncer.
func NewApp(ports *Ports, settings domain.Settings, start *url.URL, opts ...debounce.Option) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.Default()
	km := keymap.DefaultKeyMap()
	router := NewRouter(start)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		router:      router,
		seen:        router.Version(),
		widgetView:  search.NewView(s, km, ports.Search, settings.Widget, opts...),
		resultsView: results.NewView(s, km, ports.Search, router, settings.Page.FacetVisibleLimit),
		currentView: messages.ViewForPath(router.Location().Path),
		settings:    settings,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.widgetView.WithContext(ctx)
	a.resultsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("qsc"),
		a.widgetView.Init(),
	}
	if a.currentView == messages.ViewResults {
		cmds = append(cmds, a.resultsView.Sync())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, a.checkNavigation(cmd)
}

// checkNavigation announces a router move made while handling a message.
func (a *App) checkNavigation(cmd tea.Cmd) tea.Cmd {
	if a.router.Version() == a.seen {
		return cmd
	}
	a.seen = a.router.Version()
	loc := a.router.Location()
	return tea.Batch(cmd, func() tea.Msg { return messages.LocationChanged{URL: loc} })
}

//nolint:gocyclo,funlen // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	// The widget owns the debounce loop and its timers, so their messages
	// reach it whichever view is showing.
	case tea.FocusMsg, tea.BlurMsg,
		messages.QueryDebounced, messages.CandidatesFetched, messages.BlurGraceElapsed:
		a.widgetView, cmd = a.widgetView.Update(msg)
		return cmd

	case messages.ResultsFetched:
		a.resultsView, cmd = a.resultsView.Update(msg)
		return cmd

	case messages.LocationChanged:
		return a.locationChanged(msg.URL)

	case messages.Submitted:
		return a.submitted(msg)

	case messages.Resolved:
		return a.resolved(msg)

	case messages.ResultsShown:
		return a.record(msg.Query, domain.QuerySourcePage, msg.Total)

	case messages.OpenRequested:
		return a.open(msg.URL)

	case messages.CopyRequested:
		return a.copyURL(msg.URL)

	case messages.ActionDone:
		a.notice(msg)
		return nil

	case messages.BackRequested:
		if !a.router.Back() {
			if err := a.router.Push(&url.URL{Path: messages.RouteWidget}); err != nil {
				a.err = err
			}
		}
		return nil

	case messages.ConfigReloaded:
		a.settings = msg.Settings
		a.widgetView.SetSettings(msg.Settings.Widget)
		a.resultsView.SetLimit(msg.Settings.Page.FacetVisibleLimit)
		logger.Info("configuration reloaded")
		return nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Warn("tui: %v", msg.Err)
		a.notice(messages.ActionDone{Err: msg.Err})
		return nil

	case messages.Quit:
		return tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewWidget:
		a.widgetView, cmd = a.widgetView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		return tea.Quit
	}

	if a.showHelp {
		if keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Back) {
			a.showHelp = false
		}
		return nil
	}

	switch a.currentView {
	case messages.ViewWidget:
		a.widgetView, cmd = a.widgetView.Update(msg)
	case messages.ViewResults:
		// "?" is a query character while editing.
		if !a.resultsView.Editing() && keymap.Matches(k, a.keymap.Help) {
			a.showHelp = true
			return nil
		}
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// locationChanged activates the view for the new route.
func (a *App) locationChanged(loc *url.URL) tea.Cmd {
	if loc == nil {
		return nil
	}
	a.showHelp = false
	a.currentView = messages.ViewForPath(loc.Path)
	logger.Debug("location %s", loc)
	if a.currentView == messages.ViewResults {
		return a.resultsView.Sync()
	}
	return nil
}

// submitted carries a widget action to its destination.
func (a *App) submitted(msg messages.Submitted) tea.Cmd {
	switch msg.Action.Kind {
	case interaction.ActionRedirect:
		return tea.Batch(
			a.open(msg.Action.URL),
			a.record(msg.Query, domain.QuerySourceWidget, msg.Candidates),
		)

	case interaction.ActionResolve:
		return a.resolve(msg.Action.Text)

	case interaction.ActionResultsPage:
		a.goToResults(msg.Action.Text)
		return nil

	case interaction.ActionNone:
	}
	return nil
}

// resolve looks up the destination of a suggestion off the UI loop.
// A failed lookup falls back to the results page for the suggestion.
func (a *App) resolve(text string) tea.Cmd {
	svc, ctx := a.ports.Search, a.ctx
	return func() tea.Msg {
		res, err := svc.Resolve(ctx, text)
		if err != nil {
			logger.Failure("resolve", domain.ErrorKind(err), err)
			res = domain.Resolution{Kind: domain.ResolveToResultsPage, Query: text}
		}
		if res.Query == "" {
			res.Query = text
		}
		return messages.Resolved{Resolution: res, Err: err}
	}
}

func (a *App) resolved(msg messages.Resolved) tea.Cmd {
	res := msg.Resolution
	if res.Kind == domain.ResolveToDocument && res.URL != "" {
		return tea.Batch(
			a.open(res.URL),
			a.record(res.Query, domain.QuerySourceWidget, 1),
		)
	}
	a.goToResults(res.Query)
	return nil
}

// goToResults pushes the results page for q.
func (a *App) goToResults(q string) {
	q = strings.TrimSpace(q)
	target := faceted.State{Query: q, Page: 1}.URL(&url.URL{Path: messages.RouteResults})
	if err := a.router.Push(target); err != nil {
		a.err = err
	}
}

func (a *App) open(rawURL string) tea.Cmd {
	svc, ctx := a.ports.ResultAction, a.ctx
	return func() tea.Msg {
		if err := svc.OpenURL(ctx, rawURL); err != nil {
			return messages.ActionDone{Err: fmt.Errorf("open %s: %w", rawURL, err)}
		}
		return messages.ActionDone{Message: "Opened " + rawURL}
	}
}

func (a *App) copyURL(rawURL string) tea.Cmd {
	svc, ctx := a.ports.ResultAction, a.ctx
	return func() tea.Msg {
		if err := svc.CopyURL(ctx, rawURL); err != nil {
			return messages.ActionDone{Err: fmt.Errorf("copy %s: %w", rawURL, err)}
		}
		return messages.ActionDone{Message: "Copied " + rawURL}
	}
}

// record stores a query in history. Failures are logged, never shown.
func (a *App) record(query string, source domain.QuerySource, count int) tea.Cmd {
	svc, ctx := a.ports.History, a.ctx
	if svc == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	return func() tea.Msg {
		if err := svc.Record(ctx, query, source, count); err != nil {
			logger.Warn("recording history: %v", err)
		}
		return nil
	}
}

// notice shows an action outcome on the active view.
func (a *App) notice(msg messages.ActionDone) {
	text, isErr := msg.Message, false
	if msg.Err != nil {
		a.err = msg.Err
		text, isErr = msg.Err.Error(), true
	}
	switch a.currentView {
	case messages.ViewWidget:
		a.widgetView.SetNotice(text, isErr)
	case messages.ViewResults:
		a.resultsView.SetNotice(text, isErr)
	case messages.ViewHelp:
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		return a.viewHelp()
	}

	switch a.currentView {
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewWidget, messages.ViewHelp:
	}
	return a.widgetView.View()
}

// viewHelp renders the key bindings.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("[esc] back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// NewProgram builds the Bubble Tea program with mouse and focus reporting.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(a.ctx),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.widgetView.Close()
	_, err := a.NewProgram().Run()
	return err
}

// Close releases the widget's debouncer.
func (a *App) Close() {
	a.widgetView.Close()
}

// Router returns the location stack.
func (a *App) Router() *Router {
	return a.router
}

// WidgetView returns the search widget.
func (a *App) WidgetView() *search.View {
	return a.widgetView
}

// ResultsView returns the results page.
func (a *App) ResultsView() *results.View {
	return a.resultsView
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	if a.showHelp {
		return messages.ViewHelp
	}
	return a.currentView
}

// Settings returns the settings in effect.
func (a *App) Settings() domain.Settings {
	return a.settings
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.widgetView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
}
