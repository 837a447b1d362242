package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

var (
	searchJSON bool
	searchOpen int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every domain at once",
	Long: `Sends one query to clients, services, quotations, invoices and expenses
and prints the merged results, grouped by domain.

Use --open N to navigate to the Nth result, as if it was selected in the TUI.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchOpen, "open", 0, "navigate to the Nth result (1-based)")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON shape of a search.
type searchOutput struct {
	Query         string                `json:"query"`
	Count         int                   `json:"count"`
	Results       []domain.SearchResult `json:"results"`
	FailedDomains []string              `json:"failed_domains,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	settings, err := r.AppSettings()
	if err != nil {
		return err
	}

	text := domain.NormaliseQuery(strings.Join(args, " "))
	if !domain.Acceptable(text, settings.Search.MinLength) {
		return fmt.Errorf("%w: query must be at least %d characters",
			domain.ErrInvalidInput, settings.Search.MinLength)
	}

	aggregator, err := r.Aggregator(cmd.Context())
	if err != nil {
		return err
	}

	batch := aggregator.Search(cmd.Context(), domain.Query{Generation: 1, Text: text})
	switch batch.Outcome {
	case domain.OutcomeFailed:
		logger.Warn("all domains failed: %v", batch.Err)
		return errors.New(domain.SearchFailedMessage)
	case domain.OutcomeCancelled:
		return batch.Err
	}

	var failed []string
	notifier := notify.NewLogNotifier("search")
	for _, d := range batch.FailedDomains() {
		notifier.Notify(domain.Notice{
			Level:   domain.NoticeWarn,
			Message: fmt.Sprintf("%s unavailable: %v", d.Domain.Label(), d.Err),
		})
		failed = append(failed, d.Domain.String())
	}

	if searchOpen > 0 {
		return openResult(cmd, r, batch, searchOpen)
	}

	if searchJSON {
		return outputSearchJSON(cmd, batch, failed)
	}
	outputSearchTable(cmd, batch)
	return nil
}

func openResult(cmd *cobra.Command, r *Runtime, batch domain.Batch, n int) error {
	if n > len(batch.Results) {
		return fmt.Errorf("%w: result %d of %d", domain.ErrNotFound, n, len(batch.Results))
	}
	history, err := r.History(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	result := batch.Results[n-1]
	intent := domain.IntentFor(result, batch.Query, time.Now())
	if err := history.Navigator().Navigate(cmd.Context(), intent); err != nil {
		return fmt.Errorf("opening %s: %w", result.Route, err)
	}
	return nil
}

func outputSearchJSON(cmd *cobra.Command, batch domain.Batch, failed []string) error {
	out := searchOutput{
		Query:         batch.Query,
		Count:         len(batch.Results),
		Results:       batch.Results,
		FailedDomains: failed,
	}
	if out.Results == nil {
		out.Results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, batch domain.Batch) {
	if batch.Empty() {
		cmd.Println(domain.EmptyResultsMessage(batch.Query))
		cmd.Println(domain.EmptyResultsHint)
		return
	}

	cmd.Println(list.CountLabel(len(batch.Results)))
	cmd.Println()
	for i, result := range batch.Results {
		cmd.Printf("  [%d] %s %s  (%s)\n", i+1, result.Icon, result.Title, result.Type.Label())
		if result.Subtitle != "" {
			cmd.Printf("      %s\n", result.Subtitle)
		}
		cmd.Printf("      %s\n", result.Route)
	}
}
