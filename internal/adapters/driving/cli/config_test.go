package cli

import (
	"bufio"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadLine_TrimsInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  browser \n"))
	assert.Equal(t, "browser", readLine(reader))
}

func TestReadPassword_FallsBackToLine(t *testing.T) {
	assert.Equal(t, "secret-token", readPassword(strings.NewReader("secret-token\n")))
}

func TestConfigCmd_ShowDefaults(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "config")

	require.NoError(t, err)
	assert.Contains(t, out, "[API]")
	assert.Contains(t, out, "Source: demo dataset")
	assert.Contains(t, out, "Token: (not set)")
	assert.Contains(t, out, "Results per domain: 5")
	assert.Contains(t, out, "Debounce: 300ms")
	assert.Contains(t, out, "Blur grace: 200ms")
	assert.Contains(t, out, "[History]")
}

func TestConfigCmd_Path(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "config", "path")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), strings.TrimSpace(out))
}

func TestConfigCmd_Keys(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "config", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, "search.per_domain_limit")
	assert.Contains(t, out, "history.limit")
}

func TestConfigCmd_SetAndShow(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "config", "set", "search.per_domain_limit", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "search.per_domain_limit set to 8")

	out, err = execute(t, dir, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Results per domain: 8")
}

func TestConfigCmd_SetInvalidValue(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "config", "set", "search.min_length", "zero")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_SetUnknownKey(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "config", "set", "search.mode", "full")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_SetSecretFromPrompt(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "tok-1234567890\n", "config", "set", "api.token")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter api.token:")
	assert.Contains(t, out, "api.token set to tok-...7890")
	assert.NotContains(t, out, "tok-1234567890")

	out, err = execute(t, dir, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Token: tok-...7890")
}

func TestConfigCmd_SetSecretRequiresValue(t *testing.T) {
	_, err := execute(t, t.TempDir(), "\n", "config", "set", "api.token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_SetRouterModeFromChoice(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "2\n", "config", "set", "router.mode")
	require.NoError(t, err)
	assert.Contains(t, out, "Select Router Mode")
	assert.Contains(t, out, "router.mode set to "+domain.AllRouterModes()[1].String())
}

func TestConfigCmd_SetRouterModeInvalidChoice(t *testing.T) {
	_, err := execute(t, t.TempDir(), "9\n", "config", "set", "router.mode")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_SetPromptsForValue(t *testing.T) {
	out, err := execute(t, t.TempDir(), "600\n", "config", "set", "search.debounce_ms")

	require.NoError(t, err)
	assert.Contains(t, out, "search.debounce_ms set to 600")
}

func TestConfigCmd_Unset(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "", "config", "set", "search.min_length", "4")
	require.NoError(t, err)

	out, err := execute(t, dir, "", "config", "unset", "search.min_length")
	require.NoError(t, err)
	assert.Contains(t, out, "search.min_length restored to its default")

	out, err = execute(t, dir, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Minimum length: 2")
}
