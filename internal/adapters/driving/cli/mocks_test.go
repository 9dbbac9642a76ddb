package cli

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	page       *domain.ResultPage
	candidates []domain.Candidate
	resolution *domain.Resolution
	err        error

	params  []url.Values
	queries []string
}

func (m *mockSearchService) Candidates(_ context.Context, query string) ([]domain.Candidate, error) {
	m.queries = append(m.queries, query)
	return m.candidates, m.err
}

func (m *mockSearchService) Resolve(_ context.Context, s string) (domain.Resolution, error) {
	if m.resolution != nil {
		return *m.resolution, m.err
	}
	return domain.Resolution{Kind: domain.ResolveToResultsPage, Query: s}, m.err
}

func (m *mockSearchService) Page(_ context.Context, params url.Values) (*domain.ResultPage, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.ResultPage{}, nil
	}
	return m.page, nil
}

func (m *mockSearchService) ExtraParameters() url.Values {
	return url.Values{"site": {"docs"}}
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.QueryRecord
	limit   int
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, q string, src domain.QuerySource, n int) error {
	m.records = append(m.records, domain.QueryRecord{
		Query:       q,
		Source:      src,
		ResultCount: n,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	return m.err
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.QueryRecord, error) {
	m.limit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.records = nil
	return nil
}

// mockResultActionService records opened and copied URLs.
type mockResultActionService struct {
	opened []string
	copied []string
	err    error
}

func (m *mockResultActionService) OpenURL(_ context.Context, rawURL string) error {
	m.opened = append(m.opened, rawURL)
	return m.err
}

func (m *mockResultActionService) CopyURL(_ context.Context, rawURL string) error {
	m.copied = append(m.copied, rawURL)
	return m.err
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.Settings
	set      map[string]string
	setErr   error
	path     string
}

func newMockSettingsService() *mockSettingsService {
	s := domain.DefaultSettings()
	s.Backend.Endpoint = "https://search.example.com/api"
	s.Backend.ResultKey = "docs"
	return &mockSettingsService{settings: s, set: map[string]string{}, path: "/tmp/qsc/config.toml"}
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	switch key {
	case "backend.endpoint":
		m.settings.Backend.Endpoint = value
	case "backend.result_key":
		m.settings.Backend.ResultKey = value
	case "backend.suggest_endpoint":
		m.settings.Backend.SuggestEndpoint = value
	case "backend.api_token":
		m.settings.Backend.APIToken = value
	case "widget.submit_policy":
		m.settings.Widget.SubmitPolicy = domain.SubmitPolicy(value)
	}
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"backend.endpoint", "widget.debounce"}
}

func (m *mockSettingsService) Path() string {
	return m.path
}

// testServices bundles the mocks installed by setupTestServices.
type testServices struct {
	search   *mockSearchService
	history  *mockHistoryService
	actions  *mockResultActionService
	settings *mockSettingsService
}

func samplePage() *domain.ResultPage {
	return &domain.ResultPage{
		Documents: []domain.Hit{
			{Document: domain.Document{
				ID:          "1",
				Title:       "Go concurrency patterns",
				URL:         "https://docs.example.com/go-concurrency",
				Description: "<p>Channels and <b>goroutines</b></p>",
			}},
			{Document: domain.Document{ID: "2", Title: "Effective Go", URL: "https://docs.example.com/effective-go"}},
		},
		Facets: []domain.Facet{{
			ID:   "lang",
			Name: "Language",
			Values: []domain.FacetValue{
				{Value: "en", Filter: "f.lang=en", Count: 2},
				{Value: "de", Filter: "f.lang=de", Count: 1},
			},
		}},
		Paging: domain.Paging{CurrentPage: 1, PageCount: 3},
		Total:  12,
	}
}

func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		search:   &mockSearchService{page: samplePage()},
		history:  &mockHistoryService{},
		actions:  &mockResultActionService{},
		settings: newMockSettingsService(),
	}
	SetServices(&Services{
		Search:       ts.search,
		History:      ts.history,
		ResultAction: ts.actions,
		Settings:     ts.settings,
	})
	return ts, func() { SetServices(nil) }
}

// resetFlags restores flag variables; cobra keeps them between executions.
func resetFlags() {
	verbose = false
	configDir = ""
	searchPage = 1
	searchSort = ""
	searchFilters = nil
	searchJSON = false
	searchOpen = 0
	suggestJSON = false
	resolveOpen = false
	historyLimit = 20
	historyJSON = false
	historyYes = false
	renderOut = ""
	tuiLocation = "/"
	mcpPort = 0
	serveAddr = "localhost:8080"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
