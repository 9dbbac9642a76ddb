package memory

import (
	"sync"
	"time"

	"github.com/custodia-labs/qsc-search/internal/adapters/driven/config"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in process, seeded with flat keys. Service
// tests use it in place of the TOML file.
type ConfigStore struct {
	mu     sync.RWMutex
	values config.Values
}

// NewConfigStore merges the seed maps, later maps winning.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	values := config.Values{}
	for _, m := range seed {
		for k, v := range m {
			values[k] = v
		}
	}
	return &ConfigStore{values: values}
}

// view returns the values with the read lock held; call the returned
// func to release it.
func (s *ConfigStore) view() (config.Values, func()) {
	s.mu.RLock()
	return s.values, s.mu.RUnlock
}

func (s *ConfigStore) Get(key string) (any, bool) {
	v, done := s.view()
	defer done()
	val, ok := v[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, done := s.view()
	defer done()
	return v.String(key)
}

func (s *ConfigStore) GetInt(key string) int {
	v, done := s.view()
	defer done()
	return v.Int(key)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	v, done := s.view()
	defer done()
	return v.Float(key)
}

func (s *ConfigStore) GetBool(key string) bool {
	v, done := s.view()
	defer done()
	return v.Bool(key)
}

func (s *ConfigStore) GetDuration(key string) time.Duration {
	v, done := s.view()
	defer done()
	return v.Duration(key)
}

func (s *ConfigStore) GetStringMap(prefix string) map[string]string {
	v, done := s.view()
	defer done()
	return v.StringMap(prefix)
}

func (s *ConfigStore) Keys() []string {
	v, done := s.view()
	defer done()
	return v.Keys()
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save and Load have nothing to persist.
func (s *ConfigStore) Save() error { return nil }
func (s *ConfigStore) Load() error { return nil }

// Path names the store for log lines; there is no file.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
