package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/qsc-search/internal/adapters/driven/config"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// FileName is the settings file inside the config directory.
const FileName = "config.toml"

// ConfigStore keeps the qsc settings in a TOML file, nested by table
// ([backend], [widget], [history]) on disk and flattened in memory.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values config.Values
}

// NewConfigStore opens dir/config.toml, defaulting dir to ~/.qsc.
// A missing file is not an error; the store starts empty.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, ".qsc")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{path: filepath.Join(dir, FileName), values: config.Values{}}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// read runs fn against the values under the read lock.
func (s *ConfigStore) read(fn func(config.Values)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.values)
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) (out string) {
	s.read(func(v config.Values) { out = v.String(key) })
	return out
}

func (s *ConfigStore) GetInt(key string) (out int) {
	s.read(func(v config.Values) { out = v.Int(key) })
	return out
}

func (s *ConfigStore) GetFloat(key string) (out float64) {
	s.read(func(v config.Values) { out = v.Float(key) })
	return out
}

func (s *ConfigStore) GetBool(key string) (out bool) {
	s.read(func(v config.Values) { out = v.Bool(key) })
	return out
}

func (s *ConfigStore) GetDuration(key string) (out time.Duration) {
	s.read(func(v config.Values) { out = v.Duration(key) })
	return out
}

func (s *ConfigStore) GetStringMap(prefix string) (out map[string]string) {
	s.read(func(v config.Values) { out = v.StringMap(prefix) })
	return out
}

func (s *ConfigStore) Keys() (out []string) {
	s.read(func(v config.Values) { out = v.Keys() })
	return out
}

// Set updates one key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.write()
}

// Save rewrites the file from memory.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write marshals the nested tables; the caller holds the write lock.
// The file may carry an API token, so it is private to the user.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(s.values.Nest())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Load replaces the in-memory values with the file contents.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.replace(config.Values{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	s.replace(config.Flatten(tables))
	return nil
}

func (s *ConfigStore) replace(v config.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = v
}

// Path returns the settings file location.
func (s *ConfigStore) Path() string {
	return s.path
}
