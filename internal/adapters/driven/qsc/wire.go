package qsc

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// envelope is the outer response object.
type envelope struct {
	Result map[string]json.RawMessage `json:"result"`
}

// resultSet is the object under result.<resultKey>. Pointer fields tell an
// absent value from a zero one so defaults can be applied.
type resultSet struct {
	Documents []domain.Hit   `json:"documents"`
	Facets    []domain.Facet `json:"facets"`
	Paging    *paging        `json:"paging"`
	Sort      *sortBlock     `json:"sort"`
	Total     *int           `json:"total"`
}

type paging struct {
	PageCount    *int            `json:"pageCount"`
	CurrentPage  *int            `json:"currentPage"`
	FirstPage    *domain.PageRef `json:"firstPage"`
	LastPage     *domain.PageRef `json:"lastPage"`
	NextPage     *domain.PageRef `json:"nextPage"`
	PreviousPage *domain.PageRef `json:"previousPage"`
	Rows         *int            `json:"rows"`
}

type sortBlock struct {
	Sort []domain.SortOption `json:"sort"`
}

// decodeResultPage extracts result.<resultKey> from body.
func decodeResultPage(body []byte, resultKey string) (*domain.ResultPage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, malformed(err)
	}
	if env.Result == nil {
		return nil, malformed(fmt.Errorf("missing result"))
	}
	raw, ok := env.Result[resultKey]
	if !ok || string(raw) == "null" {
		return nil, malformed(fmt.Errorf("missing result.%s", resultKey))
	}

	var rs resultSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, malformed(fmt.Errorf("result.%s: %w", resultKey, err))
	}

	page := &domain.ResultPage{
		Documents: rs.Documents,
		Facets:    rs.Facets,
		Paging:    rs.Paging.toDomain(),
	}
	if page.Documents == nil {
		page.Documents = []domain.Hit{}
	}
	if rs.Sort != nil {
		page.SortOptions = rs.Sort.Sort
	}
	if rs.Total != nil {
		page.Total = *rs.Total
	}
	return page, nil
}

// toDomain applies the paging defaults for absent fields.
func (p *paging) toDomain() domain.Paging {
	out := domain.DefaultPaging()
	if p == nil {
		return out
	}
	if p.PageCount != nil {
		out.PageCount = *p.PageCount
	}
	if p.CurrentPage != nil {
		out.CurrentPage = *p.CurrentPage
	}
	if p.FirstPage != nil {
		out.FirstPage = *p.FirstPage
	}
	if p.LastPage != nil {
		out.LastPage = *p.LastPage
	}
	if p.Rows != nil {
		out.Rows = *p.Rows
	}
	out.NextPage = p.NextPage
	out.PreviousPage = p.PreviousPage
	return out
}

// decodeSuggestions parses the suggestion endpoint's top-level array.
func decodeSuggestions(body []byte) ([]domain.Suggestion, error) {
	var out []domain.Suggestion
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, malformed(err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}

func malformed(err error) error {
	return &domain.FetchError{Kind: domain.ErrMalformedBody, Err: err}
}
