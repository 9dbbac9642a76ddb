package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// logFileName is written next to the config file while the TUI owns the screen.
const logFileName = "qsc.log"

var tuiLocation string

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search interface.

The widget lists live candidates while you type; submitting opens a
document or the faceted results page. The config file is watched and
widget and page settings apply without a restart.

Controls:
  ↑/↓      - Move the highlighted candidate or result
  Enter    - Submit / open
  Tab      - Switch between results and facets
  Space    - Toggle the highlighted facet value
  s        - Cycle sort order
  ←/→      - Previous / next page
  /        - Edit the query
  y        - Copy the result URL
  Esc      - Back
  ?        - Toggle help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLocation, "location", "/", "start location, e.g. \"/search?query=go\"")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal() {
		return ErrNotTerminal
	}

	start, err := url.Parse(tuiLocation)
	if err != nil {
		return fmt.Errorf("invalid location %q: %w", tuiLocation, err)
	}

	closeLog := redirectLog()
	defer closeLog()

	ports := tui.NewPorts(searchService(), historyService(), resultActionService())
	app, err := tui.NewApp(ports, currentSettings(), start)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	defer app.Close()

	program := app.NewProgram()

	watchSettings(cmd.Context(), func(s domain.Settings) {
		program.Send(messages.ConfigReloaded{Settings: s})
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLog sends log output to a file so it does not corrupt the screen.
func redirectLog() func() {
	dir := ""
	if svc := settingsService(); svc != nil && svc.Path() != "" {
		dir = filepath.Dir(svc.Path())
	}
	if dir == "" {
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return func() {}
	}
	logger.SetOutput(f)
	logger.SetTimestamps(true)
	return func() {
		logger.SetOutput(os.Stderr)
		logger.SetTimestamps(false)
		f.Close()
	}
}
