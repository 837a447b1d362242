// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// QueryCommitted carries a query the debouncer committed.
type QueryCommitted struct {
	Query domain.Query
}

// BatchSettled carries the fan-out result of a committed query.
type BatchSettled struct {
	Batch domain.Batch
}

// BlurElapsed fires when the blur grace delay of Token has passed.
type BlurElapsed struct {
	Token uint64
}

// ConfigReloaded signals the configuration file changed on disk.
type ConfigReloaded struct{}

// Navigated reports a navigation emitted by a selection.
type Navigated struct {
	Route string
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search box with its result panel.
	ViewSearch ViewType = iota
	// ViewHistory lists recent navigations.
	ViewHistory
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// HistoryLoaded carries recent navigations.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// HistoryCleared signals recent navigations were forgotten.
type HistoryCleared struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
