package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// RouterMode defines how navigation intents are delivered.
type RouterMode string

// Available router modes.
const (
	// RouterModePrint writes the navigation target to the terminal.
	RouterModePrint RouterMode = "print"

	// RouterModeBrowser opens the navigation target in the web client.
	RouterModeBrowser RouterMode = "browser"
)

// IsValid returns true if the router mode is recognised.
func (m RouterMode) IsValid() bool {
	switch m {
	case RouterModePrint, RouterModeBrowser:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m RouterMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m RouterMode) Description() string {
	switch m {
	case RouterModePrint:
		return "Print (write the route to the terminal)"
	case RouterModeBrowser:
		return "Browser (open the record in the web client)"
	default:
		return unknownDescription
	}
}

// AllRouterModes returns all available router modes.
func AllRouterModes() []RouterMode {
	return []RouterMode{RouterModePrint, RouterModeBrowser}
}

// DefaultAPIBaseURL is the backend used when nothing is configured.
const DefaultAPIBaseURL = "http://127.0.0.1:8000/api"

// APISettings holds backend connection configuration.
type APISettings struct {
	// BaseURL is the normalised API root, always ending in /api.
	BaseURL string

	// Token is an optional bearer token.
	Token string

	// Timeout bounds every backend request.
	Timeout time.Duration

	// RateLimit is the sustained request rate per second shared by all domains.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int

	// Demo serves searches from the built-in sample dataset.
	Demo bool
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Debounce is the quiet period before a query is committed.
	Debounce time.Duration

	// MinLength is the minimum trimmed query length, in runes.
	MinLength int

	// PerDomainLimit caps the results taken from each domain.
	PerDomainLimit int

	// BlurGrace is the delay between losing focus and closing the panel.
	BlurGrace time.Duration
}

// RouterSettings holds navigation configuration.
type RouterSettings struct {
	// Mode selects the router adapter.
	Mode RouterMode

	// WebBaseURL is prefixed to routes when opening or printing URLs.
	WebBaseURL string
}

// HistorySettings holds navigation history configuration.
type HistorySettings struct {
	// Enabled persists navigations to disk.
	Enabled bool

	// Limit is the number of entries listed.
	Limit int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds backend settings.
	API APISettings

	// Search holds search behaviour settings.
	Search SearchSettings

	// Router holds navigation settings.
	Router RouterSettings

	// History holds navigation history settings.
	History HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   10 * time.Second,
			RateLimit: 20,
			Burst:     10,
		},
		Search: SearchSettings{
			Debounce:       300 * time.Millisecond,
			MinLength:      2,
			PerDomainLimit: 5,
			BlurGrace:      200 * time.Millisecond,
		},
		Router: RouterSettings{
			Mode:       RouterModePrint,
			WebBaseURL: "http://localhost:5173",
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   50,
		},
	}
}

// NormaliseAPIURL trims trailing slashes and appends /api when missing.
// An empty value yields DefaultAPIBaseURL.
func NormaliseAPIURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultAPIBaseURL
	}
	if strings.HasSuffix(u, "/api") {
		return u
	}
	return u + "/api"
}
