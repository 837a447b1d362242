package services

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// QueryInput receives raw input text. QueryDebouncer implements it.
type QueryInput interface {
	Push(raw string) bool
	Cancel()
}

// ResultPresenter is the interaction state machine of the search box.
//
// It is not safe for concurrent use: the host event loop is its only
// writer. Commits and batches produced on other goroutines must be handed
// to the loop and applied there.
type ResultPresenter struct {
	guard     *StaleResultGuard
	input     QueryInput
	navigator driven.Navigator
	notifier  driven.Notifier
	clock     clockwork.Clock

	text    string
	focused bool
	session domain.Session
	blur    uint64

	log logger.Scoped
}

// NewResultPresenter creates a presenter. The navigator is required.
func NewResultPresenter(guard *StaleResultGuard, input QueryInput, navigator driven.Navigator) *ResultPresenter {
	return &ResultPresenter{
		guard:     guard,
		input:     input,
		navigator: navigator,
		clock:     clockwork.NewRealClock(),
		log:       logger.For("presenter"),
	}
}

// SetNotifier sets where user-facing notices go. Optional.
func (p *ResultPresenter) SetNotifier(n driven.Notifier) {
	p.notifier = n
}

// SetClock sets the clock used to timestamp navigations.
func (p *ResultPresenter) SetClock(c clockwork.Clock) {
	p.clock = c
}

// Session returns a copy of the current session.
func (p *ResultPresenter) Session() domain.Session {
	return p.session
}

// State returns the derived display state.
func (p *ResultPresenter) State() domain.SessionState {
	return p.session.State()
}

// Text returns the current raw input.
func (p *ResultPresenter) Text() string {
	return p.text
}

// Focused reports whether the input has focus.
func (p *ResultPresenter) Focused() bool {
	return p.focused
}

// Input records new raw text and forwards it to the debouncer.
// Rejected input resets the session to Closed.
func (p *ResultPresenter) Input(raw string) bool {
	p.text = raw
	if !p.input.Push(raw) {
		p.reset()
		return false
	}
	return true
}

// Commit starts a fresh loading session for q.
// Commits that are no longer the latest generation, or whose text no
// longer matches the input, are dropped.
func (p *ResultPresenter) Commit(q domain.Query) bool {
	if !p.guard.IsLatest(q.Generation) {
		p.log.Debug("drop commit %d: superseded", q.Generation)
		return false
	}
	if q.Text != domain.NormaliseQuery(p.text) {
		p.log.Debug("drop commit %d: input changed", q.Generation)
		return false
	}
	p.session = domain.Session{
		Generation: q.Generation,
		Query:      q.Text,
		Open:       true,
		Loading:    true,
	}
	return true
}

// Apply installs a settled batch if it belongs to the current session
// and is still the latest generation. Cancelled batches are ignored.
func (p *ResultPresenter) Apply(b domain.Batch) bool {
	if !p.session.Loading || b.Generation != p.session.Generation {
		p.log.Debug("drop batch %d: session is %d", b.Generation, p.session.Generation)
		return false
	}
	if b.Outcome == domain.OutcomeCancelled {
		return false
	}

	accepted := p.guard.Accept(b, func(b domain.Batch) {
		p.session = domain.Session{
			Generation: b.Generation,
			Query:      b.Query,
			Open:       p.session.Open,
			Failed:     b.Outcome == domain.OutcomeFailed,
			Results:    b.Results,
		}
	})
	if !accepted {
		p.log.Debug("drop batch %d: stale", b.Generation)
		return false
	}

	if b.Outcome == domain.OutcomeFailed {
		p.log.Warn("generation %d failed: %v", b.Generation, b.Err)
		p.notify(domain.Notice{Level: domain.NoticeError, Message: domain.SearchFailedMessage})
	}
	return true
}

// Focus gives the input focus. An existing session for the current
// input is reopened.
func (p *ResultPresenter) Focus() {
	p.focused = true
	p.blur++
	if p.session.Generation != 0 && p.session.Query == domain.NormaliseQuery(p.text) {
		p.session.Open = true
	}
}

// Blur removes focus and returns a token for BlurElapsed.
func (p *ResultPresenter) Blur() uint64 {
	p.focused = false
	p.blur++
	return p.blur
}

// BlurElapsed closes the panel once the grace delay of token has passed,
// unless focus returned or a selection happened meanwhile.
func (p *ResultPresenter) BlurElapsed(token uint64) bool {
	if token != p.blur || p.focused {
		return false
	}
	p.session.Open = false
	return true
}

// Dismiss closes the panel without navigating and blurs the input.
func (p *ResultPresenter) Dismiss() {
	p.focused = false
	p.blur++
	p.session.Open = false
}

// MoveUp moves the highlight up, stopping at the first result.
func (p *ResultPresenter) MoveUp() {
	if p.State() != domain.StateOpenWithResults {
		return
	}
	if p.session.Highlight > 0 {
		p.session.Highlight--
	}
}

// MoveDown moves the highlight down, stopping at the last result.
func (p *ResultPresenter) MoveDown() {
	if p.State() != domain.StateOpenWithResults {
		return
	}
	if p.session.Highlight < len(p.session.Results)-1 {
		p.session.Highlight++
	}
}

// Highlight highlights result i. Out-of-range indexes are ignored.
func (p *ResultPresenter) Highlight(i int) {
	if p.State() != domain.StateOpenWithResults || i < 0 || i >= len(p.session.Results) {
		return
	}
	p.session.Highlight = i
}

// Confirm selects the highlighted result.
func (p *ResultPresenter) Confirm(ctx context.Context) (bool, error) {
	return p.Select(ctx, p.session.Highlight)
}

// Select navigates to result i, then clears the input, cancels any
// pending commit and resets the session to Closed.
// It reports whether a navigation was emitted.
func (p *ResultPresenter) Select(ctx context.Context, i int) (bool, error) {
	if p.State() != domain.StateOpenWithResults || i < 0 || i >= len(p.session.Results) {
		return false, nil
	}

	intent := domain.IntentFor(p.session.Results[i], p.session.Query, p.clock.Now())
	p.text = ""
	p.input.Cancel()
	p.reset()

	if err := p.navigator.Navigate(ctx, intent); err != nil {
		p.notify(domain.Notice{Level: domain.NoticeError, Message: fmt.Sprintf("Could not open %s", intent.Route)})
		return true, fmt.Errorf("navigate to %s: %w", intent.Route, err)
	}
	p.log.Info("navigated to %s", intent.Route)
	return true, nil
}

// reset replaces the session with a closed one. Outstanding batches no
// longer match it and are dropped.
func (p *ResultPresenter) reset() {
	p.session = domain.Session{}
	p.blur++
}

func (p *ResultPresenter) notify(n domain.Notice) {
	if p.notifier == nil {
		p.log.Warn("%s", n.Message)
		return
	}
	p.notifier.Notify(n)
}
