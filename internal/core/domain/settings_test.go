package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultAPIBaseURL, s.API.BaseURL)
	assert.Equal(t, 10*time.Second, s.API.Timeout)
	assert.Equal(t, 300*time.Millisecond, s.Search.Debounce)
	assert.Equal(t, 2, s.Search.MinLength)
	assert.Equal(t, 5, s.Search.PerDomainLimit)
	assert.Equal(t, 200*time.Millisecond, s.Search.BlurGrace)
	assert.Equal(t, RouterModePrint, s.Router.Mode)
	assert.True(t, s.History.Enabled)
	assert.False(t, s.API.Demo)
}

func TestNormaliseAPIURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", DefaultAPIBaseURL},
		{"https://finvo.example.com", "https://finvo.example.com/api"},
		{"https://finvo.example.com/", "https://finvo.example.com/api"},
		{"https://finvo.example.com/api", "https://finvo.example.com/api"},
		{"https://finvo.example.com/api//", "https://finvo.example.com/api"},
		{"  http://localhost:8000  ", "http://localhost:8000/api"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseAPIURL(tt.raw))
		})
	}
}

func TestRouterMode(t *testing.T) {
	assert.True(t, RouterModeBrowser.IsValid())
	assert.False(t, RouterMode("email").IsValid())
	assert.Equal(t, unknownDescription, RouterMode("email").Description())
	assert.Len(t, AllRouterModes(), 2)
}
