package driving

import (
	"context"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// SearchAggregator fans a committed query out to every domain.
type SearchAggregator interface {
	// Search issues the query to every domain and waits for all of them.
	// Failures are reported in the returned batch, never as an error.
	Search(ctx context.Context, q domain.Query) domain.Batch

	// Domains returns the searched domains in fixed order.
	Domains() []domain.DomainType
}
