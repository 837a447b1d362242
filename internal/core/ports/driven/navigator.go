package driven

import (
	"context"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// Navigator delivers a navigation intent to wherever records are shown.
type Navigator interface {
	// Navigate shows the record named by the intent.
	Navigate(ctx context.Context, intent domain.NavigationIntent) error
}

// Notifier shows transient notices to the user.
type Notifier interface {
	// Notify displays a notice. It must not block.
	Notify(notice domain.Notice)
}
