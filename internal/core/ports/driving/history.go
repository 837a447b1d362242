package driving

import (
	"context"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// HistoryService exposes recent navigations.
type HistoryService interface {
	// Recent returns the most recent navigations.
	Recent(ctx context.Context) ([]domain.HistoryEntry, error)

	// Reopen navigates to a history entry again.
	Reopen(ctx context.Context, id string) error

	// Clear forgets every navigation.
	Clear(ctx context.Context) error
}
