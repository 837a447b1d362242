package tui

import "errors"

// ErrMissingAggregator is returned when the search aggregator is not provided.
var ErrMissingAggregator = errors.New("tui: search aggregator is required")

// ErrMissingNavigator is returned when the navigator is not provided.
var ErrMissingNavigator = errors.New("tui: navigator is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
