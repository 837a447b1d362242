// Package tui provides an interactive terminal user interface for finvo.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"fmt"

	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
)

// Ports aggregates the collaborators required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator runs committed queries against every domain.
	Aggregator driving.SearchAggregator

	// Navigator receives selections. When history is enabled this is the
	// recording navigator of the history service.
	Navigator driven.Navigator

	// History lists and reopens recent navigations. Optional.
	History driving.HistoryService

	// Settings provides search behaviour and is re-read on reload. Optional.
	Settings driving.SettingsService

	// ConfigChanges signals the configuration file changed. Optional.
	ConfigChanges <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the required collaborators.
func NewPorts(aggregator driving.SearchAggregator, navigator driven.Navigator) *Ports {
	return &Ports{
		Aggregator: aggregator,
		Navigator:  navigator,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Aggregator == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingAggregator)
	}
	if p.Navigator == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingNavigator)
	}
	return nil
}
