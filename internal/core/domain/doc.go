// Package domain defines the core types of the finvo record search.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DomainType: The closed set of searchable record categories
//   - Record: A raw record returned by one domain's search operation
//   - SearchResult: The uniform projection shown in the merged list
//   - Query and Batch: A committed query and the settled fan-out for it
//   - Session: The transient per-query state owned by the presenter
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
