package driving

import "github.com/custodia-labs/qsc-search/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (domain.Settings, error)

	// Set stores a single dotted configuration key.
	Set(key, value string) error

	// Keys lists the known configuration keys.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
