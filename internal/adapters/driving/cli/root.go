// Package cli implements the qsc command line.
//
// Commands reach the core only through driving ports. The binary's main
// package supplies a Factory that builds those ports once flags are parsed;
// tests install services directly with SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// version is overridden at build time via -ldflags "-X ...cli.version=...".
var version = "dev"

// Services holds the driving ports used by commands.
type Services struct {
	Search       driving.SearchService
	History      driving.HistoryService
	ResultAction driving.ResultActionService
	Settings     driving.SettingsService

	// Environment answers whether the process may touch the network. Optional.
	Environment driven.Environment

	// Watch blocks until ctx is done, calling onReload after each config
	// file change. Optional; long-running commands skip reloads without it.
	Watch func(ctx context.Context, onReload func()) error

	// Close releases storage. Optional.
	Close func() error
}

// Options are the global flags handed to a Factory.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Factory builds services for a command invocation.
type Factory func(opts Options) (*Services, error)

var (
	services *Services
	factory  Factory

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "qsc",
	Short: "Search-as-you-type and faceted search for a qsc backend",
	Long: `qsc queries a search backend the way its web widget does: live
candidates while you type, and a faceted results page whose state lives
in the URL.

Run 'qsc tui' for the interactive interface, 'qsc serve' for the web page,
or 'qsc search' for one-shot queries.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.qsc)")
}

// SetServices installs services directly, bypassing the factory.
func SetServices(s *Services) {
	services = s
}

// SetFactory registers the function that builds services on first use.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelled on shutdown signals.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || factory == nil {
		return nil
	}
	s, err := factory(Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return err
	}
	services = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	return services.Close()
}

// Accessors keep nil checks in one place.

func searchService() driving.SearchService {
	if services == nil {
		return nil
	}
	return services.Search
}

func historyService() driving.HistoryService {
	if services == nil {
		return nil
	}
	return services.History
}

func resultActionService() driving.ResultActionService {
	if services == nil {
		return nil
	}
	return services.ResultAction
}

func settingsService() driving.SettingsService {
	if services == nil {
		return nil
	}
	return services.Settings
}
