package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEndpoint        = "backend.endpoint"
	keySuggestEndpoint = "backend.suggest_endpoint"
	keyResultKey       = "backend.result_key"
	keyParameters      = "backend.parameters"
	keyTimeout         = "backend.timeout"
	keyRateLimit       = "backend.rate_limit"
	keyAPIToken        = "backend.api_token"
	keyDebounce        = "widget.debounce"
	keyBlurGrace       = "widget.blur_grace"
	keyMinQueryLength  = "widget.min_query_length"
	keySelectionReset  = "widget.selection_reset"
	keySubmitPolicy    = "widget.submit_policy"
	keyHighlightPolicy = "widget.highlight_policy"
	keyFacetLimit      = "page.facet_visible_limit"
	keyHistoryEnabled  = "history.enabled"
)

type valueKind int

const (
	kindString valueKind = iota
	kindDuration
	kindInt
	kindFloat
	kindBool
)

// knownKeys maps each settable key to the type it is stored as.
var knownKeys = map[string]valueKind{
	keyEndpoint:        kindString,
	keySuggestEndpoint: kindString,
	keyResultKey:       kindString,
	keyTimeout:         kindDuration,
	keyRateLimit:       kindFloat,
	keyAPIToken:        kindString,
	keyDebounce:        kindDuration,
	keyBlurGrace:       kindDuration,
	keyMinQueryLength:  kindInt,
	keySelectionReset:  kindString,
	keySubmitPolicy:    kindString,
	keyHighlightPolicy: kindString,
	keyFacetLimit:      kindInt,
	keyHistoryEnabled:  kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the current settings with defaults applied. It does not validate;
// use LoadSettings for settings that must be usable.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		Backend: domain.BackendSettings{
			Endpoint:        s.configStore.GetString(keyEndpoint),
			SuggestEndpoint: s.configStore.GetString(keySuggestEndpoint),
			ResultKey:       s.configStore.GetString(keyResultKey),
			Parameters:      s.configStore.GetStringMap(keyParameters),
			Timeout:         s.getDuration(keyTimeout, defaults.Backend.Timeout),
			RateLimit:       s.configStore.GetFloat(keyRateLimit),
			APIToken:        s.configStore.GetString(keyAPIToken),
		},
		Widget: domain.WidgetSettings{
			Debounce:        s.getDuration(keyDebounce, defaults.Widget.Debounce),
			BlurGrace:       s.getDuration(keyBlurGrace, defaults.Widget.BlurGrace),
			MinQueryLength:  s.getInt(keyMinQueryLength, defaults.Widget.MinQueryLength),
			SelectionReset:  domain.SelectionReset(s.getString(keySelectionReset, string(defaults.Widget.SelectionReset))),
			SubmitPolicy:    domain.SubmitPolicy(s.getString(keySubmitPolicy, string(defaults.Widget.SubmitPolicy))),
			HighlightPolicy: domain.HighlightPolicy(s.getString(keyHighlightPolicy, string(defaults.Widget.HighlightPolicy))),
		},
		Page: domain.PageSettings{
			FacetVisibleLimit: s.getInt(keyFacetLimit, defaults.Page.FacetVisibleLimit),
		},
		HistoryEnabled: s.getBool(keyHistoryEnabled, defaults.HistoryEnabled),
	}

	return settings, nil
}

// LoadSettings reads and validates settings from a config store.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings, err := NewSettingsService(store).Get()
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Set parses value according to the key's type and stores it.
// Extra backend parameters are set as "backend.parameters.<name>".
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)

	if name, ok := strings.CutPrefix(key, keyParameters+"."); ok {
		if name == "" || strings.Contains(name, ".") {
			return fmt.Errorf("%w: invalid parameter name %q", domain.ErrInvalidInput, name)
		}
		return s.configStore.Set(key, value)
	}

	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindString:
		if err := validateEnum(key, value); err != nil {
			return err
		}
		stored = value
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration like 300ms", domain.ErrInvalidInput, key)
		}
		stored = d.String()
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func validateEnum(key, value string) error {
	var valid bool
	switch key {
	case keySelectionReset:
		valid = domain.SelectionReset(value).IsValid()
	case keySubmitPolicy:
		valid = domain.SubmitPolicy(value).IsValid()
	case keyHighlightPolicy:
		valid = domain.HighlightPolicy(value).IsValid()
	default:
		return nil
	}
	if !valid {
		return fmt.Errorf("%w: %s does not accept %q", domain.ErrInvalidInput, key, value)
	}
	return nil
}

// Keys lists the known configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys)+1)
	for k := range knownKeys {
		keys = append(keys, k)
	}
	keys = append(keys, keyParameters+".<name>")
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val == 0 {
		return defaultVal
	}
	return val
}
