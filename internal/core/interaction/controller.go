package interaction

import (
	"strings"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// FailedMessage is the single user-visible error for any fetch failure.
const FailedMessage = "search failed"

// Options configure a Controller.
type Options struct {
	MinQueryLength int
	SelectionReset domain.SelectionReset
	SubmitPolicy   domain.SubmitPolicy
}

// OptionsFromSettings extracts controller options from widget settings.
func OptionsFromSettings(w domain.WidgetSettings) Options {
	return Options{
		MinQueryLength: w.MinQueryLength,
		SelectionReset: w.SelectionReset,
		SubmitPolicy:   w.SubmitPolicy,
	}
}

// Eligible reports whether q, once trimmed, is long enough to fetch for.
func Eligible(q string, minLength int) bool {
	return len([]rune(strings.TrimSpace(q))) >= minLength
}

// FetchRequest asks the caller to fetch candidates for Query and report back
// with the same Epoch.
type FetchRequest struct {
	Epoch uint64
	Query string
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Epoch      uint64
	Candidates []domain.Candidate
	Err        error
}

// Key is a navigation key understood by the controller.
type Key int

// Navigation keys.
const (
	KeyDown Key = iota
	KeyUp
)

// ActionKind says what the caller must do after a submission.
type ActionKind int

const (
	// ActionNone means nothing to do.
	ActionNone ActionKind = iota
	// ActionRedirect means go to Action.URL.
	ActionRedirect
	// ActionResolve means resolve the suggestion Action.Text to a destination first.
	ActionResolve
	// ActionResultsPage means open the results page for Action.Text.
	ActionResultsPage
)

// String returns the string representation of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionRedirect:
		return "redirect"
	case ActionResolve:
		return "resolve"
	case ActionResultsPage:
		return "results_page"
	default:
		return "unknown"
	}
}

// Action is the outcome of a submission.
type Action struct {
	Kind ActionKind
	URL  string
	Text string
}

// Controller is the live search widget state machine. It owns the query,
// the candidate list, the selection, the dropdown visibility and the fetch
// epoch of one widget instance. It is not safe for concurrent use: all
// calls must come from the UI event loop.
type Controller struct {
	opts Options

	query      string
	candidates []domain.Candidate
	epoch      Epoch
	selection  Selection
	visibility Visibility
	err        string
	loading    bool
}

// NewController creates a controller. Invalid options fall back to defaults.
func NewController(opts Options) *Controller {
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = domain.DefaultMinQueryLength
	}
	if !opts.SubmitPolicy.IsValid() {
		opts.SubmitPolicy = domain.SubmitDirect
	}
	return &Controller{
		opts:      opts,
		selection: NewSelection(opts.SelectionReset),
	}
}

// SetQuery records the raw input value. Nothing is fetched until
// QueryDebounced is called with the settled value.
func (c *Controller) SetQuery(q string) {
	c.query = q
}

// Query returns the raw input value.
func (c *Controller) Query() string {
	return c.query
}

// QueryDebounced handles a settled query. Short queries clear the list and
// return no request; a new epoch is started either way, so responses for
// earlier queries are discarded.
func (c *Controller) QueryDebounced(q string) (FetchRequest, bool) {
	c.query = q
	epoch := c.epoch.Next()

	trimmed := strings.TrimSpace(q)
	if !Eligible(trimmed, c.opts.MinQueryLength) {
		c.clearCandidates()
		c.err = ""
		c.loading = false
		return FetchRequest{}, false
	}

	c.loading = true
	return FetchRequest{Epoch: epoch, Query: trimmed}, true
}

// FetchCompleted commits a fetch result if its epoch is current.
// It reports whether the result was applied.
func (c *Controller) FetchCompleted(res FetchResult) bool {
	if !c.epoch.IsCurrent(res.Epoch) {
		return false
	}
	c.loading = false

	if res.Err != nil {
		c.clearCandidates()
		c.err = FailedMessage
		return true
	}

	c.err = ""
	c.candidates = res.Candidates
	c.selection.Reset(len(res.Candidates))
	c.visibility.SetCandidates(len(res.Candidates))
	return true
}

func (c *Controller) clearCandidates() {
	c.candidates = nil
	c.selection.Reset(0)
	c.visibility.SetCandidates(0)
}

// Focus handles focus gain. Existing candidates are shown again without a fetch.
func (c *Controller) Focus() {
	c.visibility.Focus()
}

// Blur handles focus loss and returns the grace token. The caller must call
// BlurGraceElapsed with it once the blur grace delay has passed.
func (c *Controller) Blur() uint64 {
	return c.visibility.Blur()
}

// BlurGraceElapsed completes a blur unless focus came back in the meantime.
func (c *Controller) BlurGraceElapsed(token uint64) {
	c.visibility.GraceElapsed(token)
}

// PointerDownOutside hides the dropdown and clears the selection.
func (c *Controller) PointerDownOutside() {
	c.dismiss()
}

// Escape hides the dropdown and clears the selection.
func (c *Controller) Escape() {
	c.dismiss()
}

func (c *Controller) dismiss() {
	c.visibility.Dismiss()
	c.selection.Clear()
}

// Key moves the selection. Keys are ignored while the dropdown is hidden.
// It reports whether the key was consumed.
func (c *Controller) Key(k Key) bool {
	if !c.Visible() {
		return false
	}
	switch k {
	case KeyDown:
		c.selection.Next()
	case KeyUp:
		c.selection.Prev()
	default:
		return false
	}
	return true
}

// Hover selects row i while the dropdown is visible.
func (c *Controller) Hover(i int) {
	if c.Visible() {
		c.selection.Set(i)
	}
}

// Click selects and submits row i.
func (c *Controller) Click(i int) Action {
	if !c.Visible() || i < 0 || i >= len(c.candidates) {
		return Action{}
	}
	c.selection.Set(i)
	return c.finish(c.choose(c.candidates[i]))
}

// Submit handles Enter or the search icon. A selected row is chosen only
// while the dropdown is visible; otherwise a non-empty query goes to the
// results page.
func (c *Controller) Submit() Action {
	if c.Visible() && c.selection.Valid() {
		return c.finish(c.choose(c.candidates[c.selection.Index()]))
	}
	q := strings.TrimSpace(c.query)
	if q == "" {
		return Action{}
	}
	return c.finish(Action{Kind: ActionResultsPage, Text: q})
}

// choose maps a candidate to an action according to the submit policy.
func (c *Controller) choose(cand domain.Candidate) Action {
	q := strings.TrimSpace(c.query)

	if c.opts.SubmitPolicy == domain.SubmitResultsPage {
		if cand.Kind == domain.CandidateSuggestion {
			return Action{Kind: ActionResultsPage, Text: cand.DisplayText}
		}
		return Action{Kind: ActionResultsPage, Text: q}
	}

	switch {
	case cand.Kind == domain.CandidateSuggestion:
		return Action{Kind: ActionResolve, Text: cand.DisplayText}
	case cand.TargetURL != "":
		return Action{Kind: ActionRedirect, URL: cand.TargetURL, Text: cand.DisplayText}
	default:
		return Action{Kind: ActionResultsPage, Text: q}
	}
}

func (c *Controller) finish(a Action) Action {
	if a.Kind == ActionResultsPage && a.Text == "" {
		return Action{}
	}
	if a.Kind != ActionNone {
		c.dismiss()
	}
	return a
}

// Visible reports whether the dropdown is shown.
func (c *Controller) Visible() bool {
	return c.visibility.Visible()
}

// Focused reports whether the input holds focus.
func (c *Controller) Focused() bool {
	return c.visibility.Focused()
}

// Candidates returns the current candidate list.
func (c *Controller) Candidates() []domain.Candidate {
	return c.candidates
}

// Selected returns the selected index or NoSelection.
func (c *Controller) Selected() int {
	return c.selection.Index()
}

// SelectedCandidate returns the selected candidate, if any.
func (c *Controller) SelectedCandidate() (domain.Candidate, bool) {
	if !c.selection.Valid() {
		return domain.Candidate{}, false
	}
	return c.candidates[c.selection.Index()], true
}

// Error returns the user-visible error, empty when the last fetch succeeded.
func (c *Controller) Error() string {
	return c.err
}

// Loading reports whether a fetch for the current epoch is outstanding.
func (c *Controller) Loading() bool {
	return c.loading
}

// Epoch returns the current fetch epoch.
func (c *Controller) Epoch() uint64 {
	return c.epoch.Current()
}

// SetOptions applies reloaded widget options. The current list and selection are kept.
func (c *Controller) SetOptions(opts Options) {
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = domain.DefaultMinQueryLength
	}
	if !opts.SubmitPolicy.IsValid() {
		opts.SubmitPolicy = domain.SubmitDirect
	}
	c.opts = opts
	if opts.SelectionReset.IsValid() {
		c.selection.policy = opts.SelectionReset
	}
}
