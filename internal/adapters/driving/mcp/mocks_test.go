package mcp

import (
	"context"
	"net/url"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	page       *domain.ResultPage
	candidates []domain.Candidate
	err        error

	params  []url.Values
	queries []string
}

func (m *mockSearchService) Candidates(_ context.Context, query string) ([]domain.Candidate, error) {
	m.queries = append(m.queries, query)
	return m.candidates, m.err
}

func (m *mockSearchService) Resolve(_ context.Context, s string) (domain.Resolution, error) {
	return domain.Resolution{Kind: domain.ResolveToResultsPage, Query: s}, m.err
}

func (m *mockSearchService) Page(_ context.Context, params url.Values) (*domain.ResultPage, error) {
	m.params = append(m.params, params)
	return m.page, m.err
}

func (m *mockSearchService) ExtraParameters() url.Values {
	return url.Values{"site": {"docs"}}
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.QueryRecord
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, q string, src domain.QuerySource, n int) error {
	m.records = append(m.records, domain.QueryRecord{Query: q, Source: src, ResultCount: n})
	return m.err
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.QueryRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.records = nil
	return m.err
}
