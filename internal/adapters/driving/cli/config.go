package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the finvo configuration file.

Values are stored in config.toml inside the configuration directory.
Running TUI sessions pick up changes without a restart.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported keys",
	RunE:  runConfigKeys,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

When the value is omitted it is prompted for. Secret values such as
api.token are read without echo.

Examples:
  finvo config set api.base_url https://finvo.example.com
  finvo config set search.per_domain_limit 8
  finvo config set api.token`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore the default of a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	settings, err := r.AppSettings()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	if settings.API.Demo {
		cmd.Println("  Source: demo dataset")
	} else {
		cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	}
	if settings.API.Token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.API.Token))
	} else {
		cmd.Println("  Token: (not set)")
	}
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Rate limit: %g/s (burst %d)\n", settings.API.RateLimit, settings.API.Burst)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Minimum length: %d\n", settings.Search.MinLength)
	cmd.Printf("  Results per domain: %d\n", settings.Search.PerDomainLimit)
	cmd.Printf("  Blur grace: %s\n", settings.Search.BlurGrace)
	cmd.Println()

	cmd.Println("[Router]")
	cmd.Printf("  Mode: %s\n", settings.Router.Mode.Description())
	cmd.Printf("  Web base URL: %s\n", settings.Router.WebBaseURL)
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Println("  Enabled: yes")
	} else {
		cmd.Println("  Enabled: no (kept in memory)")
	}
	cmd.Printf("  Limit: %d\n", settings.History.Limit)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	cmd.Println(r.ConfigPath())
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	for _, key := range r.Settings().Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	settings := r.Settings()
	key := args[0]

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case settings.IsSecret(key):
		cmd.Printf("Enter %s: ", key)
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
		if value == "" {
			return fmt.Errorf("%w: %s requires a value", domain.ErrInvalidInput, key)
		}
	case key == services.KeyRouterMode:
		value, err = promptRouterMode(cmd)
		if err != nil {
			return err
		}
	default:
		cmd.Printf("Enter %s: ", key)
		value = readLine(bufio.NewReader(cmd.InOrStdin()))
		if value == "" {
			return fmt.Errorf("%w: %s requires a value", domain.ErrInvalidInput, key)
		}
	}

	if err := settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if settings.IsSecret(key) {
		cmd.Printf("%s set to %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("%s set to %s\n", key, value)
	}
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	if err := r.Settings().Set(args[0], ""); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("%s restored to its default\n", args[0])
	return nil
}

func promptRouterMode(cmd *cobra.Command) (string, error) {
	cmd.Println("Select Router Mode")
	cmd.Println("------------------")
	modes := domain.AllRouterModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice: ")
	idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(modes), 0)
	if idx == 0 {
		return "", fmt.Errorf("%w: invalid selection", domain.ErrInvalidInput)
	}
	return modes[idx-1].String(), nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
