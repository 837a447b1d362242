package driving

import "github.com/custodia-labs/finvo-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults applied.
	Get() (*domain.AppSettings, error)

	// Set validates and stores a single key from its textual form.
	// An empty value removes the key so the default applies again.
	Set(key, value string) error

	// Keys returns every supported key, sorted.
	Keys() []string

	// IsSecret reports whether the key holds a credential.
	IsSecret(key string) bool

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
