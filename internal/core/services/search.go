package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService fetches candidates and result pages from the search backend.
// It never retries: a failure is returned to the caller, which degrades to
// an empty or closed UI state.
type SearchService struct {
	backend  driven.SearchBackend
	env      driven.Environment
	settings domain.BackendSettings
}

// NewSearchService creates a new search service.
func NewSearchService(
	backend driven.SearchBackend,
	env driven.Environment,
	settings domain.BackendSettings,
) *SearchService {
	return &SearchService{
		backend:  backend,
		env:      env,
		settings: settings,
	}
}

// ExtraParameters returns a fresh copy of the configured extra parameters.
func (s *SearchService) ExtraParameters() url.Values {
	params := url.Values{}
	keys := make([]string, 0, len(s.settings.Parameters))
	for k := range s.settings.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Set(k, s.settings.Parameters[k])
	}
	return params
}

// Candidates fetches dropdown candidates for query.
func (s *SearchService) Candidates(ctx context.Context, query string) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if err := s.guard(); err != nil {
		return nil, err
	}

	params := s.ExtraParameters()
	params.Set("q", query)

	if s.settings.SuggestMode() {
		logger.Debug("suggest q=%q", query)
		suggestions, err := s.backend.Suggest(ctx, params)
		if err != nil {
			logger.Failure("suggest", domain.ErrorKind(err), err)
			return nil, err
		}
		return domain.CandidatesFromSuggestions(suggestions), nil
	}

	logger.Debug("search q=%q", query)
	page, err := s.backend.Search(ctx, params)
	if err != nil {
		logger.Failure("search", domain.ErrorKind(err), err)
		return nil, err
	}
	return domain.CandidatesFromHits(page.Documents), nil
}

// Resolve turns a suggestion into a destination. Zero documents, or a failed
// lookup, resolve to the results page for the suggestion text.
func (s *SearchService) Resolve(ctx context.Context, suggestion string) (domain.Resolution, error) {
	suggestion = strings.TrimSpace(suggestion)
	fallback := domain.Resolution{Kind: domain.ResolveToResultsPage, Query: suggestion}
	if suggestion == "" {
		return domain.Resolution{}, fmt.Errorf("%w: empty suggestion", domain.ErrInvalidInput)
	}
	if err := s.guard(); err != nil {
		return domain.Resolution{}, err
	}

	params := s.ExtraParameters()
	params.Set("q", suggestion)

	page, err := s.backend.Search(ctx, params)
	if err != nil {
		logger.Failure("resolve", domain.ErrorKind(err), err)
		return fallback, nil
	}
	for _, hit := range page.Documents {
		if hit.Document.URL != "" {
			logger.Debug("resolved %q to %s", suggestion, hit.Document.URL)
			return domain.Resolution{Kind: domain.ResolveToDocument, URL: hit.Document.URL, Query: suggestion}, nil
		}
	}
	logger.Debug("no document for %q, falling back to results page", suggestion)
	return fallback, nil
}

// Page fetches a full faceted result set for params.
func (s *SearchService) Page(ctx context.Context, params url.Values) (*domain.ResultPage, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	logger.Debug("results page %s", params.Encode())
	page, err := s.backend.Search(ctx, params)
	if err != nil {
		logger.Failure("results page", domain.ErrorKind(err), err)
		return nil, err
	}
	return page, nil
}

// guard refuses network access where the environment cannot perform it,
// and every request when no backend is configured.
func (s *SearchService) guard() error {
	if s.backend == nil {
		return fmt.Errorf("%w: no search backend (run 'qsc config init')", domain.ErrNotConfigured)
	}
	if s.env != nil && !s.env.Interactive() {
		return domain.ErrUnavailable
	}
	return nil
}
