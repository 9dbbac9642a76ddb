package faceted

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// mockNavigator implements driven.Navigator with an in-memory history.
type mockNavigator struct {
	location *url.URL
	pushed   []string
	PushFunc func(u *url.URL) error
}

func newMockNavigator(t *testing.T, raw string) *mockNavigator {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return &mockNavigator{location: u}
}

func (m *mockNavigator) Location() *url.URL {
	return m.location
}

func (m *mockNavigator) Push(u *url.URL) error {
	if m.PushFunc != nil {
		if err := m.PushFunc(u); err != nil {
			return err
		}
	}
	m.pushed = append(m.pushed, u.String())
	m.location = u
	return nil
}

func TestPage_SyncScenario(t *testing.T) {
	nav := newMockNavigator(t, "/search?query=api&page=2&f.lang=en")
	page := NewPage(nav, url.Values{"index": {"guides"}}, 5)

	req, ok := page.Sync()

	require.True(t, ok)
	assert.Equal(t, "api", req.Params.Get("q"))
	assert.Equal(t, "2", req.Params.Get("page"))
	assert.Equal(t, "en", req.Params.Get("lang"))
	assert.Equal(t, "guides", req.Params.Get("index"))
	assert.True(t, page.Loading())
	assert.Equal(t, "Searching…", page.Summary())
}

func TestPage_NoQueryNoFetch(t *testing.T) {
	page := NewPage(newMockNavigator(t, "/search?page=3"), nil, 5)

	_, ok := page.Sync()

	assert.False(t, ok)
	assert.False(t, page.Loading())
	assert.Nil(t, page.Result())
	assert.Equal(t, "Enter a query to search", page.Summary())
	assert.False(t, page.Pagination().Show)
}

func TestPage_CompleteAndStaleDiscard(t *testing.T) {
	nav := newMockNavigator(t, "/search?query=api")
	page := NewPage(nav, nil, 5)

	first, _ := page.Sync()
	require.NoError(t, page.ChangePage(2))
	second, _ := page.Sync()

	fresh := &domain.ResultPage{Total: 42, Paging: domain.Paging{PageCount: 5, CurrentPage: 2}}
	assert.True(t, page.Complete(Response{Epoch: second.Epoch, Result: fresh}))
	assert.False(t, page.Complete(Response{Epoch: first.Epoch, Result: &domain.ResultPage{Total: 1}}))

	assert.Equal(t, 42, page.Result().Total)
	assert.Equal(t, `42 results found for "api"`, page.Summary())
	assert.Equal(t, "Page 2 of 5", page.Pagination().Label)
}

func TestPage_FailureShowsEmptyResults(t *testing.T) {
	page := NewPage(newMockNavigator(t, "/search?query=api"), nil, 5)
	req, _ := page.Sync()

	applied := page.Complete(Response{Epoch: req.Epoch, Err: &domain.FetchError{Kind: domain.ErrBadResponse, Status: 500}})

	assert.True(t, applied)
	assert.True(t, page.Failed())
	require.NotNil(t, page.Result())
	assert.Empty(t, page.Result().Documents)
	assert.Equal(t, `No results found for "api"`, page.Summary())
}

func TestPage_ActionsPushNextURL(t *testing.T) {
	nav := newMockNavigator(t, "/search?query=api&page=2&f.lang=en")
	page := NewPage(nav, nil, 5)
	page.Sync()

	require.NoError(t, page.ToggleFilter(Filter{Key: "lang", Value: "de"}))
	assert.Equal(t, "/search?query=api&page=1&f.lang=en&f.lang=de", nav.pushed[0])

	page.Sync()
	require.NoError(t, page.ChangeSort("titleasc"))
	assert.Equal(t, "/search?query=api&page=1&sort=titleasc&f.lang=en&f.lang=de", nav.pushed[1])

	page.Sync()
	require.NoError(t, page.ChangePage(3))
	assert.Equal(t, "/search?query=api&page=3&sort=titleasc&f.lang=en&f.lang=de", nav.pushed[2])

	page.Sync()
	require.NoError(t, page.Search("oauth"))
	assert.Equal(t, "/search?query=oauth&page=1&sort=titleasc&f.lang=en&f.lang=de", nav.pushed[3])
}

func TestPage_PushError(t *testing.T) {
	nav := newMockNavigator(t, "/search?query=api")
	nav.PushFunc = func(*url.URL) error { return errors.New("history full") }
	page := NewPage(nav, nil, 5)
	page.Sync()

	err := page.ChangePage(2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history full")
}

func TestPage_NoNavigator(t *testing.T) {
	page := NewPage(nil, nil, 5)

	_, ok := page.Sync()
	assert.False(t, ok)
	assert.ErrorIs(t, page.ChangePage(2), ErrNoNavigator)
}

func TestPage_ExpansionResetsOnNewResults(t *testing.T) {
	page := NewPage(newMockNavigator(t, "/search?query=api"), nil, 2)
	result := &domain.ResultPage{Facets: []domain.Facet{langFacet("en", "de", "fr")}}

	req, _ := page.Sync()
	page.Complete(Response{Epoch: req.Epoch, Result: result})
	page.ToggleExpanded("lang")
	assert.Len(t, page.Facets()[0].Values, 3)

	req, _ = page.Sync()
	page.Complete(Response{Epoch: req.Epoch, Result: result})
	assert.Len(t, page.Facets()[0].Values, 2)
}

func TestPage_Sorts(t *testing.T) {
	page := NewPage(newMockNavigator(t, "/search?query=api&sort=titledesc"), nil, 5)
	req, _ := page.Sync()
	page.Complete(Response{Epoch: req.Epoch, Result: domain.EmptyResultPage()})

	sorts := page.Sorts()

	require.Len(t, sorts, 3)
	assert.True(t, sorts[1].Selected)
	assert.False(t, sorts[0].Selected)
}
