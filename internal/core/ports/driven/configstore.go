package driven

import "time"

// ConfigStore is the key/value view of the qsc settings file.
//
// Keys are dot separated paths into the TOML tables ("backend.endpoint",
// "widget.debounce", "backend.parameters.lang"). Typed getters return the
// zero value when a key is absent or holds a value of another type, so
// callers layer defaults on top rather than checking every key.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	// GetDuration accepts Go duration strings ("300ms") and bare integers as milliseconds.
	GetDuration(key string) time.Duration
	// GetStringMap collects the string values below prefix, keyed by the rest
	// of their key: "backend.parameters.lang" is "lang" under "backend.parameters".
	GetStringMap(prefix string) map[string]string
	// Keys lists every leaf key, sorted.
	Keys() []string

	// Set writes through to storage.
	Set(key string, value any) error
	Save() error
	// Load replaces the in-memory values with what storage holds now.
	Load() error
	// Path is where the settings live; stores without a file return a placeholder.
	Path() string
}
