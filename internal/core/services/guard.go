package services

import (
	"sync"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// StaleResultGuard hands out query generations and decides whether a
// finished batch is still current.
//
// Commit and Accept share one lock, so no commit can slip between the
// freshness check of a batch and its application.
type StaleResultGuard struct {
	mu     sync.Mutex
	latest uint64
}

// NewStaleResultGuard creates a guard with no committed generation.
func NewStaleResultGuard() *StaleResultGuard {
	return &StaleResultGuard{}
}

// Commit assigns the next generation. Only the debouncer calls it.
func (g *StaleResultGuard) Commit() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Latest returns the most recently committed generation.
func (g *StaleResultGuard) Latest() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest
}

// IsLatest reports whether gen is the most recently committed generation.
func (g *StaleResultGuard) IsLatest(gen uint64) bool {
	return g.Latest() == gen
}

// Accept runs apply with the batch iff it belongs to the latest generation.
// The check and apply run under the guard's lock; apply must not call back
// into the guard. A stale batch is dropped silently.
func (g *StaleResultGuard) Accept(b domain.Batch, apply func(domain.Batch)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b.Generation != g.latest {
		return false
	}
	apply(b)
	return true
}
