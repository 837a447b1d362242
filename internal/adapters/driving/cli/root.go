// Package cli provides the cobra command tree of the finvo binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "FINVO_CONFIG_DIR"

// version is set at build time through Execute.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// rt holds the services of the running command. It is built on first use.
var rt *Runtime

var rootCmd = &cobra.Command{
	Use:   "finvo",
	Short: "Search clients, services, quotations, invoices and expenses",
	Long: `finvo searches the records of a finvo backend from the terminal.

One query is sent to every domain at once and the answers are merged into a
single list. Run "finvo tui" for the interactive search box, or
"finvo search <query>" for a one-shot search.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the search pipeline to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.finvo, or $"+EnvConfigDir+")")
}

// Execute runs the root command.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeRuntime(); err == nil {
		err = closeErr
	}
	return err
}

// runtimeFor returns the shared runtime, building it on first use.
func runtimeFor(cmd *cobra.Command) (*Runtime, error) {
	if rt != nil {
		return rt, nil
	}
	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	r, err := NewRuntime(dir)
	if err != nil {
		return nil, err
	}
	logger.Section(cmd.CommandPath())
	logger.Debug("config directory %s", dir)
	rt = r
	return rt, nil
}

func closeRuntime() error {
	if rt == nil {
		return nil
	}
	err := rt.Close()
	rt = nil
	return err
}

// resolveConfigDir picks the flag, then the environment, then ~/.finvo.
func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return env, nil
	}
	dir, err := defaultConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return dir, nil
}
