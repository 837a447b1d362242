// Package mcp provides an MCP (Model Context Protocol) server adapter for finvo.
// It enables AI assistants to run global searches over the finvo backend.
package mcp

import "errors"

// ErrMissingAggregator is returned when the search aggregator is not provided.
var ErrMissingAggregator = errors.New("mcp: search aggregator is required")

// ErrQueryTooShort is returned when a query is below the minimum length.
var ErrQueryTooShort = errors.New("mcp: query too short")

// ErrSearchFailed is returned when every domain failed.
var ErrSearchFailed = errors.New("mcp: search failed")
