package interaction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

func docs(n int) []domain.Candidate {
	out := make([]domain.Candidate, n)
	for i := range out {
		out[i] = domain.Candidate{
			ID:          fmt.Sprintf("doc-%d", i),
			Kind:        domain.CandidateDocument,
			DisplayText: fmt.Sprintf("Document %d", i),
			TargetURL:   fmt.Sprintf("/docs/%d", i),
		}
	}
	return out
}

func suggestions(texts ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(texts))
	for i, text := range texts {
		out[i] = domain.Candidate{ID: fmt.Sprintf("suggest-%d", i), Kind: domain.CandidateSuggestion, DisplayText: text}
	}
	return out
}

func newController(t *testing.T, opts Options) *Controller {
	t.Helper()
	c := NewController(opts)
	c.Focus()
	return c
}

// load runs one debounced query through a successful fetch.
func load(t *testing.T, c *Controller, q string, cands []domain.Candidate) {
	t.Helper()
	c.SetQuery(q)
	req, ok := c.QueryDebounced(q)
	require.True(t, ok)
	require.True(t, c.FetchCompleted(FetchResult{Epoch: req.Epoch, Candidates: cands}))
}

func TestController_ScenarioArrowDownTwiceThenEnter(t *testing.T) {
	c := newController(t, Options{SelectionReset: domain.SelectFirst})

	load(t, c, "auth", docs(3))
	assert.True(t, c.Visible())
	assert.Len(t, c.Candidates(), 3)
	assert.Equal(t, 0, c.Selected())

	assert.True(t, c.Key(KeyDown))
	assert.True(t, c.Key(KeyDown))
	assert.Equal(t, 2, c.Selected())

	action := c.Submit()
	assert.Equal(t, Action{Kind: ActionRedirect, URL: "/docs/2", Text: "Document 2"}, action)
	assert.False(t, c.Visible())
}

func TestController_SelectNonePolicy(t *testing.T) {
	c := newController(t, Options{SelectionReset: domain.SelectNone})

	load(t, c, "auth", docs(3))
	assert.Equal(t, NoSelection, c.Selected())

	c.Key(KeyDown)
	c.Key(KeyDown)
	assert.Equal(t, 1, c.Selected())
}

func TestController_ShortQueryDoesNotFetchAndClears(t *testing.T) {
	c := newController(t, Options{})

	req, ok := c.QueryDebounced("xy")
	assert.True(t, ok)
	assert.Equal(t, "xy", req.Query)
	c.FetchCompleted(FetchResult{Epoch: req.Epoch, Candidates: docs(2)})
	require.True(t, c.Visible())

	_, ok = c.QueryDebounced("x")
	assert.False(t, ok)
	assert.Empty(t, c.Candidates())
	assert.False(t, c.Visible())
	assert.Equal(t, NoSelection, c.Selected())
	assert.False(t, c.Loading())
}

func TestController_QueryIsTrimmed(t *testing.T) {
	c := newController(t, Options{})

	_, ok := c.QueryDebounced("  a  ")
	assert.False(t, ok)

	req, ok := c.QueryDebounced("  ab ")
	assert.True(t, ok)
	assert.Equal(t, "ab", req.Query)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	c := newController(t, Options{})

	reqA, _ := c.QueryDebounced("oau")
	reqB, _ := c.QueryDebounced("oauth")

	assert.True(t, c.FetchCompleted(FetchResult{Epoch: reqB.Epoch, Candidates: docs(1)}))
	assert.False(t, c.FetchCompleted(FetchResult{Epoch: reqA.Epoch, Candidates: docs(4)}))

	assert.Len(t, c.Candidates(), 1)
	assert.False(t, c.Loading())
}

func TestController_LateResponseAfterShortQueryDiscarded(t *testing.T) {
	c := newController(t, Options{})

	req, _ := c.QueryDebounced("oauth")
	_, ok := c.QueryDebounced("o")
	require.False(t, ok)

	assert.False(t, c.FetchCompleted(FetchResult{Epoch: req.Epoch, Candidates: docs(3)}))
	assert.Empty(t, c.Candidates())
}

func TestController_StaleErrorDoesNotClobber(t *testing.T) {
	c := newController(t, Options{})

	reqA, _ := c.QueryDebounced("oau")
	reqB, _ := c.QueryDebounced("oauth")
	c.FetchCompleted(FetchResult{Epoch: reqB.Epoch, Candidates: docs(2)})
	c.FetchCompleted(FetchResult{Epoch: reqA.Epoch, Err: errors.New("timeout")})

	assert.Empty(t, c.Error())
	assert.Len(t, c.Candidates(), 2)
}

func TestController_FetchFailure(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))

	req, _ := c.QueryDebounced("authz")
	assert.True(t, c.Loading())
	applied := c.FetchCompleted(FetchResult{
		Epoch: req.Epoch,
		Err:   &domain.FetchError{Kind: domain.ErrMalformedBody},
	})

	assert.True(t, applied)
	assert.Equal(t, FailedMessage, c.Error())
	assert.Empty(t, c.Candidates())
	assert.False(t, c.Visible())
	assert.False(t, c.Loading())

	// Next success clears the error
	load(t, c, "authn", docs(1))
	assert.Empty(t, c.Error())
}

func TestController_ResultsWhileUnfocusedStayHidden(t *testing.T) {
	c := NewController(Options{})

	load(t, c, "auth", docs(2))
	assert.False(t, c.Visible())

	c.Focus()
	assert.True(t, c.Visible())
}

func TestController_OutsideClickThenRefocus(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))
	c.Key(KeyDown)
	epoch := c.Epoch()

	c.PointerDownOutside()
	assert.False(t, c.Visible())
	assert.Equal(t, NoSelection, c.Selected())

	c.Focus()
	assert.True(t, c.Visible())
	assert.Len(t, c.Candidates(), 3)
	assert.Equal(t, epoch, c.Epoch(), "no new fetch")
}

func TestController_EscapeHidesAndClearsSelection(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))

	c.Escape()

	assert.False(t, c.Visible())
	assert.Equal(t, NoSelection, c.Selected())
	assert.False(t, c.Key(KeyDown), "keys ignored while hidden")
}

func TestController_ClickDuringBlurGrace(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))

	token := c.Blur()
	action := c.Click(1)
	c.BlurGraceElapsed(token)

	assert.Equal(t, ActionRedirect, action.Kind)
	assert.Equal(t, "/docs/1", action.URL)
	assert.False(t, c.Visible())
}

func TestController_BlurHidesAfterGrace(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))

	token := c.Blur()
	assert.True(t, c.Visible())
	c.BlurGraceElapsed(token)

	assert.False(t, c.Visible())
	assert.Equal(t, Action{}, c.Click(0))
}

func TestController_Hover(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))

	c.Hover(2)
	assert.Equal(t, 2, c.Selected())
	c.Hover(7)
	assert.Equal(t, 2, c.Selected())

	c.Escape()
	c.Hover(1)
	assert.Equal(t, NoSelection, c.Selected())
}

func TestController_SubmitBareQuery(t *testing.T) {
	c := newController(t, Options{SelectionReset: domain.SelectNone})
	load(t, c, "auth", docs(3))

	action := c.Submit()

	assert.Equal(t, Action{Kind: ActionResultsPage, Text: "auth"}, action)
}

func TestController_SubmitWhileHiddenIgnoresStaleSelection(t *testing.T) {
	c := newController(t, Options{})
	load(t, c, "auth", docs(3))
	c.Key(KeyDown)

	token := c.Blur()
	c.BlurGraceElapsed(token)

	action := c.Submit()
	assert.Equal(t, Action{Kind: ActionResultsPage, Text: "auth"}, action)
}

func TestController_SubmitEmptyQuery(t *testing.T) {
	c := newController(t, Options{})

	assert.Equal(t, Action{}, c.Submit())

	c.SetQuery("   ")
	assert.Equal(t, Action{}, c.Submit())
}

func TestController_SubmitPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy domain.SubmitPolicy
		cands  []domain.Candidate
		want   Action
	}{
		{
			name:   "direct suggestion resolves",
			policy: domain.SubmitDirect,
			cands:  suggestions("oauth scopes"),
			want:   Action{Kind: ActionResolve, Text: "oauth scopes"},
		},
		{
			name:   "direct document redirects",
			policy: domain.SubmitDirect,
			cands:  docs(1),
			want:   Action{Kind: ActionRedirect, URL: "/docs/0", Text: "Document 0"},
		},
		{
			name:   "direct document without url goes to results",
			policy: domain.SubmitDirect,
			cands:  []domain.Candidate{{ID: "x", Kind: domain.CandidateDocument, DisplayText: "X"}},
			want:   Action{Kind: ActionResultsPage, Text: "oa"},
		},
		{
			name:   "results policy suggestion submits its text",
			policy: domain.SubmitResultsPage,
			cands:  suggestions("oauth scopes"),
			want:   Action{Kind: ActionResultsPage, Text: "oauth scopes"},
		},
		{
			name:   "results policy document submits typed query",
			policy: domain.SubmitResultsPage,
			cands:  docs(1),
			want:   Action{Kind: ActionResultsPage, Text: "oa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, Options{SubmitPolicy: tt.policy})
			load(t, c, "oa", tt.cands)

			assert.Equal(t, tt.want, c.Submit())
		})
	}
}

func TestController_MinQueryLengthOption(t *testing.T) {
	c := newController(t, Options{MinQueryLength: 3})

	_, ok := c.QueryDebounced("ab")
	assert.False(t, ok)
	_, ok = c.QueryDebounced("abc")
	assert.True(t, ok)
}

func TestController_SetOptions(t *testing.T) {
	c := newController(t, Options{})
	c.SetOptions(Options{SelectionReset: domain.SelectNone, SubmitPolicy: domain.SubmitResultsPage})

	load(t, c, "auth", docs(2))

	assert.Equal(t, NoSelection, c.Selected())
	c.Key(KeyDown)
	assert.Equal(t, Action{Kind: ActionResultsPage, Text: "auth"}, c.Submit())
}

func TestController_SelectedCandidate(t *testing.T) {
	c := newController(t, Options{})
	_, ok := c.SelectedCandidate()
	assert.False(t, ok)

	load(t, c, "auth", docs(2))
	cand, ok := c.SelectedCandidate()
	assert.True(t, ok)
	assert.Equal(t, "doc-0", cand.ID)
}

func TestOptionsFromSettings(t *testing.T) {
	w := domain.DefaultSettings().Widget
	opts := OptionsFromSettings(w)

	assert.Equal(t, w.MinQueryLength, opts.MinQueryLength)
	assert.Equal(t, w.SelectionReset, opts.SelectionReset)
	assert.Equal(t, w.SubmitPolicy, opts.SubmitPolicy)
}

func TestEpoch(t *testing.T) {
	var e Epoch
	assert.False(t, e.IsCurrent(0))

	first := e.Next()
	second := e.Next()

	assert.False(t, e.IsCurrent(first))
	assert.True(t, e.IsCurrent(second))
	assert.Equal(t, second, e.Current())
}

func TestEligible(t *testing.T) {
	assert.False(t, Eligible("a", 2))
	assert.False(t, Eligible("  a  ", 2))
	assert.True(t, Eligible("ab", 2))
	assert.True(t, Eligible("ü ß", 3))
	assert.True(t, Eligible("", 0))
}
