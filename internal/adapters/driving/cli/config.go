package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change qsc settings. They live in a TOML file, by default
~/.qsc/config.toml, and running commands pick up edits automatically.

Use 'qsc config init' for a guided setup of the backend.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single dotted key, e.g.

  qsc config set widget.debounce 250ms
  qsc config set backend.parameters.site docs

Run 'qsc config keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive backend setup",
	Long:  `Prompt for the backend endpoints, the result key and an optional API token.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc := settingsService()
	if svc == nil {
		return ErrSettingsNotConfigured
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	b := settings.Backend
	cmd.Println("[Backend]")
	cmd.Printf("  Endpoint: %s\n", orNotSet(b.Endpoint))
	cmd.Printf("  Suggest endpoint: %s\n", orNotSet(b.SuggestEndpoint))
	cmd.Printf("  Result key: %s\n", orNotSet(b.ResultKey))
	cmd.Printf("  Timeout: %s\n", b.Timeout)
	if b.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g/s\n", b.RateLimit)
	}
	if b.APIToken != "" {
		cmd.Printf("  API token: %s\n", maskAPIKey(b.APIToken))
	}
	if len(b.Parameters) > 0 {
		names := make([]string, 0, len(b.Parameters))
		for k := range b.Parameters {
			names = append(names, k)
		}
		sort.Strings(names)
		cmd.Println("  Parameters:")
		for _, k := range names {
			cmd.Printf("    %s = %s\n", k, b.Parameters[k])
		}
	}
	mode := "documents"
	if b.SuggestMode() {
		mode = "suggestions"
	}
	cmd.Printf("  Widget lists: %s\n", mode)
	cmd.Println()

	w := settings.Widget
	cmd.Println("[Widget]")
	cmd.Printf("  Debounce: %s\n", w.Debounce)
	cmd.Printf("  Blur grace: %s\n", w.BlurGrace)
	cmd.Printf("  Min query length: %d\n", w.MinQueryLength)
	cmd.Printf("  Selection reset: %s\n", w.SelectionReset)
	cmd.Printf("  Submit policy: %s\n", w.SubmitPolicy)
	cmd.Printf("  Highlight policy: %s\n", w.HighlightPolicy)
	cmd.Println()

	cmd.Println("[Page]")
	cmd.Printf("  Facet visible limit: %d\n", settings.Page.FacetVisibleLimit)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %t\n", settings.HistoryEnabled)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'qsc config init' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc := settingsService()
	if svc == nil {
		return ErrSettingsNotConfigured
	}
	if err := svc.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc := settingsService()
	if svc == nil {
		return ErrSettingsNotConfigured
	}
	for _, k := range svc.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc := settingsService()
	if svc == nil {
		return ErrSettingsNotConfigured
	}
	cmd.Println(svc.Path())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	svc := settingsService()
	if svc == nil {
		return ErrSettingsNotConfigured
	}
	current, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("qsc Backend Setup")
	cmd.Println("=================")
	cmd.Println()

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	steps := []struct {
		key     string
		prompt  string
		current string
	}{
		{"backend.endpoint", "Results endpoint URL", current.Backend.Endpoint},
		{"backend.result_key", "Result key", current.Backend.ResultKey},
		{"backend.suggest_endpoint", "Suggestion endpoint URL (blank for document mode)", current.Backend.SuggestEndpoint},
	}
	for _, step := range steps {
		if step.current != "" {
			cmd.Printf("%s [%s]: ", step.prompt, step.current)
		} else {
			cmd.Printf("%s: ", step.prompt)
		}
		value := readLine(reader)
		if value == "" {
			continue
		}
		if err := svc.Set(step.key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", step.key, err)
		}
	}

	cmd.Print("API token (blank to keep): ")
	if token := readPassword(in, reader); token != "" {
		if err := svc.Set("backend.api_token", token); err != nil {
			return fmt.Errorf("failed to set backend.api_token: %w", err)
		}
	}
	cmd.Println()

	policies := []domain.SubmitPolicy{domain.SubmitDirect, domain.SubmitResultsPage}
	cmd.Println("Selecting a candidate should:")
	cmd.Println("  1. open documents directly")
	cmd.Println("  2. always show the results page")
	cmd.Print("Enter choice [1]: ")
	choice := parseChoice(readLine(reader), len(policies), 1)
	if err := svc.Set("widget.submit_policy", string(policies[choice-1])); err != nil {
		return fmt.Errorf("failed to set widget.submit_policy: %w", err)
	}

	updated, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Println()
	if err := updated.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Printf("Saved to %s\n", svc.Path())
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n') //nolint:errcheck // EOF reads as an empty answer
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, and falls back to
// a plain line otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
