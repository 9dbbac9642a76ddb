package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/excerpt"
	"github.com/custodia-labs/qsc-search/internal/highlight"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

var (
	searchPage    int
	searchSort    string
	searchFilters []string
	searchJSON    bool
	searchOpen    int
)

var (
	matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// markMatch adapts the variadic Style.Render to highlight.Render.
func markMatch(text string) string {
	return matchStyle.Render(text)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a faceted search",
	Long: `Fetches one page of results with facets, sort options and paging,
exactly as the results page would show them.

Filters use the facet key and value, e.g. --filter lang=en. They can be
repeated; values of the same key are combined.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page, 1-based")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "sort option id")
	searchCmd.Flags().StringArrayVarP(&searchFilters, "filter", "f", nil, "facet filter as key=value")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchOpen, "open", 0, "open the Nth result in the default browser")
	rootCmd.AddCommand(searchCmd)
}

// searchState builds the page state from flags. Filters go first because
// toggling one resets the page.
func searchState(query string, page int, sortID string, filters []string) (faceted.State, error) {
	st := faceted.State{Query: strings.TrimSpace(query), Page: 1, Sort: sortID}
	for _, raw := range filters {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimPrefix(strings.TrimSpace(key), faceted.FilterPrefix)
		if !ok || key == "" {
			return faceted.State{}, fmt.Errorf("%w: filter %q must be key=value", domain.ErrInvalidInput, raw)
		}
		st = st.SetFilter(faceted.Filter{Key: key, Value: value}, true)
	}
	return st.WithPage(page), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc := searchService()
	if svc == nil {
		return ErrSearchNotConfigured
	}

	st, err := searchState(args[0], searchPage, searchSort, searchFilters)
	if err != nil {
		return err
	}
	if st.Query == "" {
		return fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	settings := currentSettings()
	page := faceted.NewPage(nil, svc.ExtraParameters(), settings.Page.FacetVisibleLimit)
	req, _ := page.SyncState(st)

	result, err := svc.Page(cmd.Context(), req.Params)
	if err != nil {
		logger.Failure("search", "page", err)
		return fmt.Errorf("search failed: %w", err)
	}
	page.Complete(faceted.Response{Epoch: req.Epoch, Result: result})

	recordQuery(cmd, st.Query, domain.QuerySourceCLI, result.Total)

	if searchOpen > 0 {
		return openResult(cmd, result, searchOpen)
	}
	if searchJSON {
		return outputSearchJSON(cmd, page, st)
	}
	outputSearchText(cmd, page)
	return nil
}

func openResult(cmd *cobra.Command, result *domain.ResultPage, n int) error {
	if n > len(result.Documents) {
		return fmt.Errorf("%w: result %d of %d", domain.ErrInvalidInput, n, len(result.Documents))
	}
	actions := resultActionService()
	if actions == nil {
		return ErrActionsNotConfigured
	}
	target := result.Documents[n-1].Document.URL
	if err := actions.OpenURL(cmd.Context(), target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	cmd.Printf("Opened %s\n", target)
	return nil
}

type searchJSONOutput struct {
	Summary   string               `json:"summary"`
	Total     int                  `json:"total"`
	Location  string               `json:"location"`
	Documents []domain.Document    `json:"documents"`
	Facets    []searchJSONFacet    `json:"facets"`
	Sort      string               `json:"sort,omitempty"`
	Paging    searchJSONPagination `json:"paging"`
}

type searchJSONFacet struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Values []searchJSONValue `json:"values"`
	Hidden int               `json:"hidden,omitempty"`
}

type searchJSONValue struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

type searchJSONPagination struct {
	Current int  `json:"current"`
	Count   int  `json:"count"`
	HasNext bool `json:"has_next"`
}

func outputSearchJSON(cmd *cobra.Command, page *faceted.Page, st faceted.State) error {
	result := page.Result()
	out := searchJSONOutput{
		Summary:   page.Summary(),
		Total:     result.Total,
		Location:  st.URL(nil).String(),
		Documents: make([]domain.Document, 0, len(result.Documents)),
		Sort:      st.Sort,
	}
	for _, hit := range result.Documents {
		out.Documents = append(out.Documents, hit.Document)
	}
	for _, f := range page.Facets() {
		jf := searchJSONFacet{ID: f.ID, Name: f.Name, Hidden: f.Hidden}
		for _, v := range f.Values {
			jf.Values = append(jf.Values, searchJSONValue{
				Key:      v.Filter.Key,
				Value:    v.Value,
				Count:    v.Count,
				Selected: v.Selected,
			})
		}
		out.Facets = append(out.Facets, jf)
	}
	p := page.Pagination()
	out.Paging = searchJSONPagination{Current: p.Current, Count: p.Count, HasNext: p.HasNext}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, page *faceted.Page) {
	st := page.State()
	result := page.Result()

	cmd.Println(page.Summary())
	if len(result.Documents) == 0 {
		return
	}
	cmd.Println()

	for i, hit := range result.Documents {
		title := highlight.Render(highlight.MultiTerm(st.Query, hit.Document.DisplayTitle()), markMatch)
		cmd.Printf("  [%d] %s\n", i+1, title)
		if hit.Document.URL != "" {
			cmd.Printf("      %s\n", dimStyle.Render(hit.Document.URL))
		}
		if text := excerpt.Summarize(hit.Document.Description, excerpt.DefaultLength); text != "" {
			cmd.Printf("      %s\n", text)
		}
	}
	cmd.Println()

	if facets := page.Facets(); len(facets) > 0 {
		for _, f := range facets {
			values := make([]string, 0, len(f.Values))
			for _, v := range f.Values {
				mark := "[ ]"
				if v.Selected {
					mark = "[x]"
				}
				values = append(values, fmt.Sprintf("%s %s=%s (%d)", mark, v.Filter.Key, v.Value, v.Count))
			}
			line := strings.Join(values, "  ")
			if f.Hidden > 0 {
				line += dimStyle.Render(fmt.Sprintf("  +%d more", f.Hidden))
			}
			cmd.Printf("%s: %s\n", f.Name, line)
		}
	}

	var sorts []string
	for _, so := range page.Sorts() {
		if so.Selected {
			sorts = append(sorts, "*"+so.ID)
			continue
		}
		sorts = append(sorts, so.ID)
	}
	cmd.Printf("Sort: %s\n", strings.Join(sorts, " "))

	if p := page.Pagination(); p.Show {
		cmd.Println(p.Label)
	}
}
