package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/highlight"
)

var (
	suggestJSON bool
	resolveOpen bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Show live candidates for a partial query",
	Long: `Prints the candidates the search widget would list for a partial
query: suggestions when a suggestion endpoint is configured, documents
otherwise. Queries shorter than widget.min_query_length print nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [suggestion]",
	Short: "Resolve a suggestion to its destination",
	Long: `Resolves a suggestion to the first matching document, or to the
results page for the suggestion text when no document matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output candidates as JSON")
	resolveCmd.Flags().BoolVar(&resolveOpen, "open", false, "open a resolved document in the default browser")
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(resolveCmd)
}

type candidateJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	svc := searchService()
	if svc == nil {
		return ErrSearchNotConfigured
	}

	query := args[0]
	settings := currentSettings()
	var candidates []domain.Candidate
	if interaction.Eligible(query, settings.Widget.MinQueryLength) {
		var err error
		candidates, err = svc.Candidates(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if suggestJSON {
		out := make([]candidateJSON, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, candidateJSON{Kind: c.Kind.String(), Text: c.DisplayText, URL: c.TargetURL})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	policy := settings.Widget.HighlightPolicy
	for _, c := range candidates {
		text := highlight.Render(highlight.Apply(policy, query, c.DisplayText), markMatch)
		if c.Kind == domain.CandidateDocument && c.TargetURL != "" {
			cmd.Printf("%s  %s\n", text, dimStyle.Render(c.TargetURL))
			continue
		}
		cmd.Println(text)
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	svc := searchService()
	if svc == nil {
		return ErrSearchNotConfigured
	}

	res, err := svc.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if res.Kind == domain.ResolveToResultsPage {
		st := faceted.State{Query: res.Query, Page: 1}
		cmd.Println(st.URL(nil).String())
		return nil
	}

	recordQuery(cmd, args[0], domain.QuerySourceCLI, 1)
	if !resolveOpen {
		cmd.Println(res.URL)
		return nil
	}
	actions := resultActionService()
	if actions == nil {
		return ErrActionsNotConfigured
	}
	if err := actions.OpenURL(cmd.Context(), res.URL); err != nil {
		return fmt.Errorf("open %s: %w", res.URL, err)
	}
	cmd.Printf("Opened %s\n", res.URL)
	return nil
}
