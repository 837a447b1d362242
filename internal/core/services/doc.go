// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search pipeline is built from four parts:
//
//   - QueryDebouncer: coalesces keystrokes into committed queries
//   - StaleResultGuard: hands out generations and gates late batches
//   - FanOutAggregator: queries every domain concurrently and merges
//   - ResultPresenter: the interaction state machine driven by the host loop
//
// Services are pure Go with no CGO. Beyond the standard library they only
// use golang.org/x/sync, clockwork and uuid.
package services
