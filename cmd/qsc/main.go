// Command qsc is a search-as-you-type and faceted search client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/qsc-search/internal/adapters/driven/config/file"
	"github.com/custodia-labs/qsc-search/internal/adapters/driven/qsc"
	"github.com/custodia-labs/qsc-search/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/qsc-search/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/qsc-search/internal/adapters/driven/system"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/cli"
	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/services"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactory(buildServices)

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// buildServices wires driven adapters into the core services.
// A missing or invalid backend is not fatal: config commands must still run,
// and search commands report the problem when they reach the backend.
func buildServices(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings, err := services.LoadSettings(store)
	if err != nil {
		logger.Debug("settings incomplete, using defaults: %v", err)
		if settings, err = settingsService.Get(); err != nil {
			settings = domain.DefaultSettings()
		}
	}

	env := system.DetectEnvironment()

	var backend driven.SearchBackend
	cfg := qsc.ConfigFromSettings(settings.Backend)
	cfg.UserAgent = "qsc/" + version
	if client, err := qsc.NewClient(cfg); err == nil {
		backend = client
	} else {
		logger.Debug("search backend unavailable: %v", err)
	}

	historyStore, closeStore := openHistory(opts.ConfigDir)

	return &cli.Services{
		Search:       services.NewSearchService(backend, env, settings.Backend),
		History:      services.NewHistoryService(historyStore, settings.HistoryEnabled),
		ResultAction: services.NewResultActionService(system.NewOpener(), env, settings.Backend.Endpoint),
		Settings:     settingsService,
		Environment:  env,
		Watch: func(ctx context.Context, onReload func()) error {
			return file.NewWatcher(store, onReload).Run(ctx)
		},
		Close: closeStore,
	}, nil
}

// openHistory opens the SQLite history, falling back to an in-memory store
// when the database cannot be opened (read-only home, locked file).
func openHistory(configDir string) (driven.HistoryStore, func() error) {
	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("history unavailable, keeping it in memory: %v", err)
		return memory.NewHistoryStore(), func() error { return nil }
	}
	return store.HistoryStore(), func() error {
		if err := store.Close(); err != nil {
			return fmt.Errorf("closing history: %w", err)
		}
		return nil
	}
}
