package driven

import (
	"context"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// DomainSearcher searches one record domain of the backend.
// The backend is a black box: free-text query in, bounded page of records out.
type DomainSearcher interface {
	// Domain reports which domain this searcher covers.
	Domain() domain.DomainType

	// Search returns the records matching text, in the backend's order.
	// Errors wrap domain.ErrNetwork, domain.ErrServer or domain.ErrTimeout.
	Search(ctx context.Context, text string) ([]domain.Record, error)
}
