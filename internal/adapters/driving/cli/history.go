package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent navigations",
	Long: `Lists the records recently opened from search, newest first.

Use "finvo history open <n|id>" to open one of them again.`,
	RunE: runHistoryList,
}

var historyOpenCmd = &cobra.Command{
	Use:   "open <n|id>",
	Short: "Open a recent navigation again",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryOpen,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recent navigation",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyOpenCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	history, err := r.History(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	entries, err := history.Recent(cmd.Context())
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No recent navigations.")
		return nil
	}
	for i, e := range entries {
		cmd.Printf("  [%d] %s %s  (%s)\n", i+1, e.Type.Icon(), e.Title, e.Type.Label())
		cmd.Printf("      %s  %q  %s\n", e.Route, e.Query, humanize.Time(e.VisitedAt))
	}
	return nil
}

func runHistoryOpen(cmd *cobra.Command, args []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	history, err := r.History(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	id := args[0]
	if n, convErr := strconv.Atoi(id); convErr == nil {
		entries, err := history.Recent(cmd.Context())
		if err != nil {
			return err
		}
		if n < 1 || n > len(entries) {
			return fmt.Errorf("%w: entry %d of %d", domain.ErrNotFound, n, len(entries))
		}
		id = entries[n-1].ID
	}

	if err := history.Reopen(cmd.Context(), id); err != nil {
		return fmt.Errorf("reopening %s: %w", args[0], err)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	history, err := r.History(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := history.Clear(cmd.Context()); err != nil {
		return err
	}
	notify.NewWriterNotifier(cmd.OutOrStdout()).Notify(domain.Notice{
		Level:   domain.NoticeInfo,
		Message: "History cleared",
	})
	return nil
}
