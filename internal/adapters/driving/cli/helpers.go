package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// currentSettings returns the configured settings, or the defaults when
// settings are unavailable or unreadable.
func currentSettings() domain.Settings {
	svc := settingsService()
	if svc == nil {
		return domain.DefaultSettings()
	}
	s, err := svc.Get()
	if err != nil {
		logger.Warn("reading settings, using defaults: %v", err)
		return domain.DefaultSettings()
	}
	return s
}

// recordQuery adds a query to history. Failures are logged, never returned.
func recordQuery(cmd *cobra.Command, query string, source domain.QuerySource, count int) {
	history := historyService()
	if history == nil {
		return
	}
	if err := history.Record(cmd.Context(), query, source, count); err != nil {
		logger.Warn("recording query: %v", err)
	}
}

// watchSettings calls apply with fresh settings whenever the config file
// changes, until ctx is done. It does nothing without a watcher.
func watchSettings(ctx context.Context, apply func(domain.Settings)) {
	if services == nil || services.Watch == nil {
		return
	}
	go func() {
		err := services.Watch(ctx, func() { apply(currentSettings()) })
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()
}
