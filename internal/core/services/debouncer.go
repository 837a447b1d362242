package services

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// DefaultDebounce is the quiet period before a query is committed.
const DefaultDebounce = 300 * time.Millisecond

// QueryDebouncer coalesces rapid input into committed queries.
//
// Each accepted Push restarts a single-shot timer; only the text present
// when the timer expires is committed. Commits are delivered through a
// one-slot mailbox that always holds the newest query, so a slow consumer
// never observes an older commit after a newer one.
type QueryDebouncer struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	guard     *StaleResultGuard
	delay     time.Duration
	minLength int

	timer   clockwork.Timer
	armed   uint64
	commits chan domain.Query
	closed  bool

	log logger.Scoped
}

// DebouncerOption configures a QueryDebouncer.
type DebouncerOption func(*QueryDebouncer)

// WithClock replaces the wall clock, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) DebouncerOption {
	return func(d *QueryDebouncer) { d.clock = c }
}

// WithDelay sets the quiet period.
func WithDelay(delay time.Duration) DebouncerOption {
	return func(d *QueryDebouncer) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithMinLength sets the minimum trimmed query length.
func WithMinLength(n int) DebouncerOption {
	return func(d *QueryDebouncer) {
		if n > 0 {
			d.minLength = n
		}
	}
}

// NewQueryDebouncer creates a debouncer that draws generations from guard.
func NewQueryDebouncer(guard *StaleResultGuard, opts ...DebouncerOption) *QueryDebouncer {
	d := &QueryDebouncer{
		clock:     clockwork.NewRealClock(),
		guard:     guard,
		delay:     DefaultDebounce,
		minLength: domain.DefaultMinQueryLength,
		commits:   make(chan domain.Query, 1),
		log:       logger.For("debouncer"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Push records the latest input.
// It returns false when the trimmed text is too short; any pending commit
// is then cancelled and nothing will be emitted.
func (d *QueryDebouncer) Push(raw string) bool {
	text := domain.NormaliseQuery(raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	if !domain.Acceptable(text, d.minLength) {
		d.stopLocked()
		return false
	}

	d.stopLocked()
	armed := d.armed
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(armed, text) })
	return true
}

// Cancel discards any pending commit.
func (d *QueryDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Pending reports whether a commit is scheduled.
func (d *QueryDebouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Commits returns the stream of committed queries.
// The channel is closed by Close.
func (d *QueryDebouncer) Commits() <-chan domain.Query {
	return d.commits
}

// SetDelay changes the quiet period for subsequent pushes.
func (d *QueryDebouncer) SetDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// SetMinLength changes the minimum query length for subsequent pushes.
func (d *QueryDebouncer) SetMinLength(n int) {
	if n <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minLength = n
}

// MinLength returns the current minimum query length.
func (d *QueryDebouncer) MinLength() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.minLength
}

// Close stops the timer and closes the commit stream.
func (d *QueryDebouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopLocked()
	d.closed = true
	close(d.commits)
}

// stopLocked invalidates the armed timer. A callback already running
// sees the bumped counter and does nothing.
func (d *QueryDebouncer) stopLocked() {
	d.armed++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *QueryDebouncer) fire(armed uint64, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || armed != d.armed {
		return
	}
	d.timer = nil

	q := domain.Query{Generation: d.guard.Commit(), Text: text}
	d.log.Debug("commit generation %d %q", q.Generation, q.Text)

	// Latest wins: replace an unread commit.
	select {
	case old := <-d.commits:
		d.log.Debug("superseded unread generation %d", old.Generation)
	default:
	}
	d.commits <- q
}
