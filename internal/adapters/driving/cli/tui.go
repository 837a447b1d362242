package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// tuiLogFile receives verbose logs while the TUI owns the terminal.
const tuiLogFile = "tui.log"

// runProgram runs the bubbletea program of the app.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search box",
	Long: `Launch the interactive terminal search box.

Type at least two characters to search clients, services, quotations,
invoices and expenses at once. Results appear grouped by domain.

Controls:
  ctrl+k      - Focus the search box
  ↑/↓         - Move the highlight
  Enter/click - Open the highlighted result
  Esc         - Close the results
  ctrl+r      - Recent navigations
  ctrl+c      - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}

	if logger.IsVerbose() {
		restore, err := logToFile(filepath.Join(r.Dir(), tuiLogFile))
		if err != nil {
			return err
		}
		defer restore()
	}

	aggregator, err := r.Aggregator(cmd.Context())
	if err != nil {
		return err
	}

	// Printed routes are held until the alternate screen is gone.
	var routes bytes.Buffer
	history, err := r.History(&routes)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(cmd.OutOrStdout(), &routes)
	}()

	ports := tui.NewPorts(aggregator, history.Navigator())
	ports.History = history
	ports.Settings = r.Settings()
	if changes, err := r.Watch(); err != nil {
		logger.Warn("config hot reload disabled: %v", err)
	} else {
		ports.ConfigChanges = changes
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// logToFile redirects the logger to path and returns a func restoring stderr.
func logToFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
