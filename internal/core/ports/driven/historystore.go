package driven

import (
	"context"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// HistoryStore persists navigation history.
type HistoryStore interface {
	// Save stores an entry.
	Save(ctx context.Context, entry domain.HistoryEntry) error

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// List returns at most limit entries, most recent first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
