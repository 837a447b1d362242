package services

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIBaseURL       = "api.base_url"
	KeyAPIToken         = "api.token"
	KeyAPITimeout       = "api.timeout_ms"
	KeyAPIRateLimit     = "api.rate_limit"
	KeyAPIBurst         = "api.burst"
	KeyAPIDemo          = "api.demo"
	KeySearchDebounce   = "search.debounce_ms"
	KeySearchMinLength  = "search.min_length"
	KeySearchPerDomain  = "search.per_domain_limit"
	KeySearchBlurGrace  = "search.blur_grace_ms"
	KeyRouterMode       = "router.mode"
	KeyRouterWebBaseURL = "router.web_base_url"
	KeyHistoryEnabled   = "history.enabled"
	KeyHistoryLimit     = "history.limit"
)

// Environment overrides.
const (
	EnvAPIURL = "FINVO_API_URL"
	EnvDemo   = "FINVO_DEMO"
)

type settingKind int

const (
	kindString settingKind = iota
	kindSecret
	kindURL
	kindPositiveInt
	kindBool
	kindRouterMode
)

var settingKinds = map[string]settingKind{
	KeyAPIBaseURL:       kindURL,
	KeyAPIToken:         kindSecret,
	KeyAPITimeout:       kindPositiveInt,
	KeyAPIRateLimit:     kindPositiveInt,
	KeyAPIBurst:         kindPositiveInt,
	KeyAPIDemo:          kindBool,
	KeySearchDebounce:   kindPositiveInt,
	KeySearchMinLength:  kindPositiveInt,
	KeySearchPerDomain:  kindPositiveInt,
	KeySearchBlurGrace:  kindPositiveInt,
	KeyRouterMode:       kindRouterMode,
	KeyRouterWebBaseURL: kindURL,
	KeyHistoryEnabled:   kindBool,
	KeyHistoryLimit:     kindPositiveInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// SetEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) SetEnv(getenv func(string) string) {
	s.getenv = getenv
}

// Get retrieves current application settings.
// FINVO_API_URL overrides the configured base URL and FINVO_DEMO enables
// the demo dataset.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	baseURL := s.getString(KeyAPIBaseURL, defaults.API.BaseURL)
	if env := s.getenv(EnvAPIURL); env != "" {
		baseURL = env
	}
	demo := s.getBool(KeyAPIDemo, defaults.API.Demo)
	if env := s.getenv(EnvDemo); env != "" {
		if v, err := strconv.ParseBool(env); err == nil {
			demo = v
		}
	}

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   domain.NormaliseAPIURL(baseURL),
			Token:     s.configStore.GetString(KeyAPIToken),
			Timeout:   s.getMillis(KeyAPITimeout, defaults.API.Timeout),
			RateLimit: float64(s.getInt(KeyAPIRateLimit, int(defaults.API.RateLimit))),
			Burst:     s.getInt(KeyAPIBurst, defaults.API.Burst),
			Demo:      demo,
		},
		Search: domain.SearchSettings{
			Debounce:       s.getMillis(KeySearchDebounce, defaults.Search.Debounce),
			MinLength:      s.getInt(KeySearchMinLength, defaults.Search.MinLength),
			PerDomainLimit: s.getInt(KeySearchPerDomain, defaults.Search.PerDomainLimit),
			BlurGrace:      s.getMillis(KeySearchBlurGrace, defaults.Search.BlurGrace),
		},
		Router: domain.RouterSettings{
			Mode:       s.getRouterMode(defaults.Router.Mode),
			WebBaseURL: s.getString(KeyRouterWebBaseURL, defaults.Router.WebBaseURL),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(KeyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getInt(KeyHistoryLimit, defaults.History.Limit),
		},
	}

	return settings, nil
}

// Set validates and stores a single key from its textual form.
// An empty value removes the key so the default applies again.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	if value == "" {
		if err := s.configStore.Unset(key); err != nil {
			return fmt.Errorf("unset %s: %w", key, err)
		}
		return nil
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSecret reports whether the key holds a credential.
func (s *SettingsService) IsSecret(key string) bool {
	return settingKinds[key] == kindSecret
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("expected a positive integer, got %q: %w", value, domain.ErrInvalidInput)
		}
		return n, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q: %w", value, domain.ErrInvalidInput)
		}
		return b, nil
	case kindURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("expected an http(s) URL, got %q: %w", value, domain.ErrInvalidInput)
		}
		return value, nil
	case kindRouterMode:
		mode := domain.RouterMode(value)
		if !mode.IsValid() {
			return nil, fmt.Errorf("invalid router mode %q: %w", value, domain.ErrInvalidInput)
		}
		return mode.String(), nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getRouterMode(defaultVal domain.RouterMode) domain.RouterMode {
	mode := domain.RouterMode(s.configStore.GetString(KeyRouterMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
