package mcp

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/excerpt"
	"github.com/custodia-labs/qsc-search/internal/highlight"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string              `json:"query" jsonschema:"the search query"`
	Page    int                 `json:"page,omitempty" jsonschema:"1-based result page (default 1)"`
	Sort    string              `json:"sort,omitempty" jsonschema:"sort option id, e.g. score or titleasc"`
	Filters map[string][]string `json:"filters,omitempty" jsonschema:"facet filters as key to values, e.g. {\"lang\": [\"en\"]}"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Summary   string           `json:"summary"`
	Total     int              `json:"total"`
	Location  string           `json:"location"`
	Documents []DocumentOutput `json:"documents"`
	Facets    []FacetOutput    `json:"facets"`
	Sorts     []SortOutput     `json:"sorts"`
	Paging    PagingOutput     `json:"paging"`
}

// DocumentOutput is a single result document.
type DocumentOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Highlighted string `json:"highlighted"`
	URL         string `json:"url"`
	Excerpt     string `json:"excerpt,omitempty"`
}

// FacetOutput is one facet with its visible values.
type FacetOutput struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Values []FacetValueOutput `json:"values"`
	Hidden int                `json:"hidden,omitempty"`
}

// FacetValueOutput is one countable facet value.
type FacetValueOutput struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// SortOutput is one sort option.
type SortOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// PagingOutput describes the page window.
type PagingOutput struct {
	Current     int    `json:"current"`
	Count       int    `json:"count"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
	Label       string `json:"label"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"the partial query typed so far"`
}

// SuggestOutput is the output schema for the suggest tool.
type SuggestOutput struct {
	Candidates []CandidateOutput `json:"candidates"`
	Count      int               `json:"count"`
}

// CandidateOutput is one live candidate.
type CandidateOutput struct {
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	Highlighted string `json:"highlighted"`
	URL         string `json:"url,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Run a faceted search: documents, facets with counts, sort options and paging",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest",
		Description: "Return the live search-as-you-type candidates for a partial query",
	}, s.handleSuggest)
}

// stateFromInput builds the page state. Filters are applied before the page
// because toggling a filter resets it.
func stateFromInput(input SearchInput) faceted.State {
	st := faceted.State{Query: input.Query, Page: 1, Sort: input.Sort}

	keys := make([]string, 0, len(input.Filters))
	for k := range input.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range input.Filters[k] {
			st = st.SetFilter(faceted.Filter{Key: k, Value: v}, true)
		}
	}
	return st.WithPage(input.Page)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, domain.ErrInvalidInput
	}

	st := stateFromInput(input)
	page := faceted.NewPage(nil, s.ports.Search.ExtraParameters(), s.currentSettings().Page.FacetVisibleLimit)
	req, _ := page.SyncState(st)

	result, err := s.ports.Search.Page(ctx, req.Params)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	page.Complete(faceted.Response{Epoch: req.Epoch, Result: result})

	output := SearchOutput{
		Summary:   page.Summary(),
		Total:     page.Result().Total,
		Location:  st.URL(nil).String(),
		Documents: make([]DocumentOutput, 0, len(page.Result().Documents)),
	}

	for _, hit := range page.Result().Documents {
		title := hit.Document.DisplayTitle()
		output.Documents = append(output.Documents, DocumentOutput{
			ID:          hit.Document.ID,
			Title:       title,
			Highlighted: highlight.Render(highlight.MultiTerm(st.Query, title), bold),
			URL:         hit.Document.URL,
			Excerpt:     excerpt.Summarize(hit.Document.Description, excerpt.DefaultLength),
		})
	}

	for _, f := range page.Facets() {
		fo := FacetOutput{ID: f.ID, Name: f.Name, Hidden: f.Hidden}
		for _, v := range f.Values {
			fo.Values = append(fo.Values, FacetValueOutput{
				Key:      v.Filter.Key,
				Value:    v.Value,
				Count:    v.Count,
				Selected: v.Selected,
			})
		}
		output.Facets = append(output.Facets, fo)
	}

	for _, so := range page.Sorts() {
		output.Sorts = append(output.Sorts, SortOutput{ID: so.ID, Name: so.Name, Selected: so.Selected})
	}

	p := page.Pagination()
	output.Paging = PagingOutput{
		Current:     p.Current,
		Count:       p.Count,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
		Label:       p.Label,
	}

	s.record(ctx, st.Query, output.Total)
	return nil, output, nil
}

// handleSuggest handles the suggest tool invocation. Queries below the
// minimum length return no candidates without calling the backend.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	output := SuggestOutput{Candidates: []CandidateOutput{}}
	settings := s.currentSettings()
	if !interaction.Eligible(input.Query, settings.Widget.MinQueryLength) {
		return nil, output, nil
	}

	candidates, err := s.ports.Search.Candidates(ctx, input.Query)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	policy := settings.Widget.HighlightPolicy
	for _, c := range candidates {
		output.Candidates = append(output.Candidates, CandidateOutput{
			Kind:        c.Kind.String(),
			Text:        c.DisplayText,
			Highlighted: highlight.Render(highlight.Apply(policy, input.Query, c.DisplayText), bold),
			URL:         c.TargetURL,
		})
	}
	output.Count = len(output.Candidates)
	return nil, output, nil
}

// record stores a tool search in history.
func (s *Server) record(ctx context.Context, query string, total int) {
	if s.ports.History == nil {
		return
	}
	if err := s.ports.History.Record(ctx, query, domain.QuerySourceMCP, total); err != nil {
		logger.Warn("mcp: recording history: %v", err)
	}
}

func bold(s string) string {
	return "**" + s + "**"
}
