package mcp

import (
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator runs queries against every domain.
	Aggregator driving.SearchAggregator

	// History lists recent navigations. Optional.
	History driving.HistoryService

	// Settings provides the minimum query length. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Aggregator == nil {
		return ErrMissingAggregator
	}
	return nil
}
