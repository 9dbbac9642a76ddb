package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/qsc-search/internal/debounce"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes and notifies a callback.
type Watcher struct {
	store    *ConfigStore
	onReload func()
	delay    time.Duration
}

// NewWatcher creates a watcher for store. onReload runs after each successful reload.
func NewWatcher(store *ConfigStore, onReload func()) *Watcher {
	return &Watcher{
		store:    store,
		onReload: onReload,
		delay:    reloadDelay,
	}
}

// Run watches until ctx is cancelled.
// The parent directory is watched rather than the file itself, so editors that
// replace the file on save (rename over) keep triggering reloads.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("watching config file for changes: %s", w.store.Path())

	reload := debounce.New(w.delay, func(struct{}) { w.reload() })
	defer reload.Close()

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("config file changed (%s)", event.Op)
				reload.Set(struct{}{})
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("config reload failed, keeping previous settings: %v", err)
		return
	}
	logger.Info("configuration reloaded from %s", w.store.Path())
	if w.onReload != nil {
		w.onReload()
	}
}
