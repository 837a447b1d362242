package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// execute runs the root command against the config directory dir, with the
// demo dataset enabled and stdin reading from input.
func execute(t *testing.T, dir, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FINVO_DEMO", "1")
	t.Setenv(EnvConfigDir, "")
	t.Setenv("FINVO_API_URL", "")

	configDir = dir
	verbose = false
	searchJSON = false
	searchOpen = 0
	t.Cleanup(func() {
		configDir = ""
		logger.SetVerbose(false)
		_ = closeRuntime()
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"search", "tui", "history", "config", "mcp", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestResolveConfigDir_FlagWins(t *testing.T) {
	t.Setenv(EnvConfigDir, "/from/env")
	configDir = "/from/flag"
	defer func() { configDir = "" }()

	dir, err := resolveConfigDir()

	require.NoError(t, err)
	assert.Equal(t, "/from/flag", dir)
}

func TestResolveConfigDir_Env(t *testing.T) {
	t.Setenv(EnvConfigDir, "/from/env")

	dir, err := resolveConfigDir()

	require.NoError(t, err)
	assert.Equal(t, "/from/env", dir)
}

func TestResolveConfigDir_Default(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	original := defaultConfigDir
	defaultConfigDir = func() (string, error) { return "/home/test/.finvo", nil }
	defer func() { defaultConfigDir = original }()

	dir, err := resolveConfigDir()

	require.NoError(t, err)
	assert.Equal(t, "/home/test/.finvo", dir)
}

func TestExecute_SetsVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute(context.Background(), "1.2.3"))
	assert.Contains(t, buf.String(), "finvo version 1.2.3")
}

func TestRuntime_DemoAggregator(t *testing.T) {
	t.Setenv("FINVO_DEMO", "1")
	r, err := NewRuntime(t.TempDir())
	require.NoError(t, err)
	defer r.Close()

	agg, err := r.Aggregator(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, agg.Limit())

	again, err := r.Aggregator(context.Background())
	require.NoError(t, err)
	assert.Same(t, agg, again)
}

func TestRuntime_HistoryPersistsInSQLite(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRuntime(dir)
	require.NoError(t, err)

	_, err = r.History(new(bytes.Buffer))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.FileExists(t, filepath.Join(dir, "history.db"))
}

func TestRuntime_HistoryInMemoryWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRuntime(dir)
	require.NoError(t, err)
	require.NoError(t, r.Settings().Set("history.enabled", "false"))

	_, err = r.History(new(bytes.Buffer))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.NoFileExists(t, filepath.Join(dir, "history.db"))
}

func TestRuntime_Watch(t *testing.T) {
	r, err := NewRuntime(t.TempDir())
	require.NoError(t, err)

	changes, err := r.Watch()
	require.NoError(t, err)
	assert.NotNil(t, changes)
	assert.NoError(t, r.Close())
}
