package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
	historyYes   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the local query history",
	Long: `Queries submitted from the TUI, the web page, the CLI and MCP tools are
recorded locally unless history.enabled is false.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent queries, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded queries",
	RunE:  runHistoryClear,
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records")
		c.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON")
	}
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip the confirmation prompt")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

type historyRecordJSON struct {
	Query       string `json:"query"`
	Source      string `json:"source"`
	ResultCount int    `json:"result_count"`
	CreatedAt   string `json:"created_at"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	history := historyService()
	if history == nil {
		return ErrHistoryNotConfigured
	}

	records, err := history.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		out := make([]historyRecordJSON, 0, len(records))
		for _, r := range records {
			out = append(out, historyRecordJSON{
				Query:       r.Query,
				Source:      string(r.Source),
				ResultCount: r.ResultCount,
				CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No queries recorded.")
		return nil
	}
	for _, r := range records {
		cmd.Printf("%s  %-7s %5d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Source, r.ResultCount, r.Query)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	history := historyService()
	if history == nil {
		return ErrHistoryNotConfigured
	}

	if !historyYes {
		cmd.Print("Delete all recorded queries? [y/N]: ")
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := history.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
