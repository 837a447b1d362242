package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoAggregator indicates that no search aggregator was provided.
	ErrNoAggregator = errors.New("search aggregator is required")

	// ErrNoNavigator indicates that no navigator was provided.
	ErrNoNavigator = errors.New("navigator is required")
)
