package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// mockInput implements QueryInput, accepting text of two or more runes.
type mockInput struct {
	pushed    []string
	cancelled int
}

func (m *mockInput) Push(raw string) bool {
	m.pushed = append(m.pushed, raw)
	return domain.Acceptable(raw, domain.DefaultMinQueryLength)
}

func (m *mockInput) Cancel() {
	m.cancelled++
}

// mockNavigator implements driven.Navigator for testing.
type mockNavigator struct {
	intents []domain.NavigationIntent
	err     error
}

func (m *mockNavigator) Navigate(_ context.Context, intent domain.NavigationIntent) error {
	m.intents = append(m.intents, intent)
	return m.err
}

// mockNotifier implements driven.Notifier for testing.
type mockNotifier struct {
	notices []domain.Notice
}

func (m *mockNotifier) Notify(n domain.Notice) {
	m.notices = append(m.notices, n)
}

type presenterFixture struct {
	p     *ResultPresenter
	guard *StaleResultGuard
	input *mockInput
	nav   *mockNavigator
	notes *mockNotifier
	clock *clockwork.FakeClock
}

func newPresenterFixture() *presenterFixture {
	f := &presenterFixture{
		guard: NewStaleResultGuard(),
		input: &mockInput{},
		nav:   &mockNavigator{},
		notes: &mockNotifier{},
		clock: clockwork.NewFakeClockAt(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)),
	}
	f.p = NewResultPresenter(f.guard, f.input, f.nav)
	f.p.SetNotifier(f.notes)
	f.p.SetClock(f.clock)
	return f
}

// commit types text and simulates the debouncer firing for it.
func (f *presenterFixture) commit(text string) domain.Query {
	f.p.Input(text)
	q := domain.Query{Generation: f.guard.Commit(), Text: domain.NormaliseQuery(text)}
	f.p.Commit(q)
	return q
}

func settled(q domain.Query, results ...domain.SearchResult) domain.Batch {
	return domain.Batch{Generation: q.Generation, Query: q.Text, Outcome: domain.OutcomeSettled, Results: results}
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		domain.ClientRecord{ID: 42, Name: "Acme"}.Result(),
		domain.InvoiceRecord{ID: 9, Number: "INV-9", ClientName: "Acme"}.Result(),
		domain.ActivityRecord{ID: 7, Description: "Acme lunch"}.Result(),
	}
}

func TestResultPresenter_InitiallyClosed(t *testing.T) {
	f := newPresenterFixture()

	assert.Equal(t, domain.StateClosed, f.p.State())
	assert.False(t, f.p.Focused())
}

func TestResultPresenter_ShortInputCloses(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))
	require.Equal(t, domain.StateOpenWithResults, f.p.State())

	assert.False(t, f.p.Input("a"))

	assert.Equal(t, domain.StateClosed, f.p.State())
	assert.Equal(t, "a", f.p.Text())
}

func TestResultPresenter_CommitStartsLoading(t *testing.T) {
	f := newPresenterFixture()

	q := f.commit(" acme ")

	s := f.p.Session()
	assert.Equal(t, domain.StateLoading, f.p.State())
	assert.Equal(t, q.Generation, s.Generation)
	assert.Equal(t, "acme", s.Query)
	assert.Empty(t, s.Results)
}

func TestResultPresenter_CommitDroppedWhenInputChanged(t *testing.T) {
	f := newPresenterFixture()
	f.p.Input("acme")
	q := domain.Query{Generation: f.guard.Commit(), Text: "acme"}
	f.p.Input("acme corp")

	assert.False(t, f.p.Commit(q))
	assert.Equal(t, domain.StateClosed, f.p.State())
}

func TestResultPresenter_CommitDroppedWhenSuperseded(t *testing.T) {
	f := newPresenterFixture()
	f.p.Input("acme")
	old := domain.Query{Generation: f.guard.Commit(), Text: "acme"}
	f.guard.Commit()

	assert.False(t, f.p.Commit(old))
}

func TestResultPresenter_ApplyResults(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")

	assert.True(t, f.p.Apply(settled(q, sampleResults()...)))

	s := f.p.Session()
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
	assert.Len(t, s.Results, 3)
	assert.Equal(t, 0, s.Highlight)
	assert.Empty(t, f.notes.notices)
}

func TestResultPresenter_ApplyEmpty(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("zzz")

	f.p.Apply(settled(q))

	assert.Equal(t, domain.StateOpenEmpty, f.p.State())
	assert.Empty(t, f.notes.notices)
}

func TestResultPresenter_TotalFailureIsDistinct(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")

	f.p.Apply(domain.Batch{
		Generation: q.Generation,
		Query:      q.Text,
		Outcome:    domain.OutcomeFailed,
		Err:        domain.ErrAllDomainsFailed,
	})

	assert.Equal(t, domain.StateFailed, f.p.State())
	assert.NotEqual(t, domain.StateOpenEmpty, f.p.State())
	require.Len(t, f.notes.notices, 1)
	assert.Equal(t, domain.NoticeError, f.notes.notices[0].Level)
	assert.Equal(t, domain.SearchFailedMessage, f.notes.notices[0].Message)
}

func TestResultPresenter_CancelledBatchIgnored(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")

	assert.False(t, f.p.Apply(domain.Batch{Generation: q.Generation, Outcome: domain.OutcomeCancelled}))
	assert.Equal(t, domain.StateLoading, f.p.State())
}

// Stale batches never reach the session, whatever order they complete in.
func TestResultPresenter_StaleBatchesDropped(t *testing.T) {
	tests := []struct {
		name      string
		aFirst    bool
		wantTitle string
	}{
		{"older completes first", true, "Newer"},
		{"older completes last", false, "Newer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPresenterFixture()
			a := f.commit("acm")
			b := f.commit("acme")

			older := settled(a, domain.SearchResult{ID: 1, Title: "Older"})
			newer := settled(b, domain.SearchResult{ID: 2, Title: "Newer"})

			if tt.aFirst {
				assert.False(t, f.p.Apply(older))
				assert.True(t, f.p.Apply(newer))
			} else {
				assert.True(t, f.p.Apply(newer))
				assert.False(t, f.p.Apply(older))
			}

			s := f.p.Session()
			require.Len(t, s.Results, 1)
			assert.Equal(t, tt.wantTitle, s.Results[0].Title)
		})
	}
}

// A stale failure must not raise a notice.
func TestResultPresenter_StaleFailureIsSilent(t *testing.T) {
	f := newPresenterFixture()
	a := f.commit("acm")
	b := f.commit("acme")

	f.p.Apply(domain.Batch{Generation: a.Generation, Outcome: domain.OutcomeFailed, Err: domain.ErrAllDomainsFailed})
	f.p.Apply(settled(b, sampleResults()...))

	assert.Empty(t, f.notes.notices)
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
}

func TestResultPresenter_BatchAfterResetDropped(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Input("")

	assert.False(t, f.p.Apply(settled(q, sampleResults()...)))
	assert.Equal(t, domain.StateClosed, f.p.State())
}

func TestResultPresenter_Navigation(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	f.p.MoveUp()
	assert.Equal(t, 0, f.p.Session().Highlight)

	f.p.MoveDown()
	f.p.MoveDown()
	f.p.MoveDown()
	assert.Equal(t, 2, f.p.Session().Highlight)

	f.p.Highlight(1)
	assert.Equal(t, 1, f.p.Session().Highlight)
	f.p.Highlight(10)
	assert.Equal(t, 1, f.p.Session().Highlight)
}

func TestResultPresenter_ConfirmNavigatesAndResets(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))
	f.p.MoveDown()

	ok, err := f.p.Confirm(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, f.nav.intents, 1)
	intent := f.nav.intents[0]
	assert.Equal(t, "/invoices/9", intent.Route)
	assert.Equal(t, domain.DomainInvoice, intent.Type)
	assert.Equal(t, "acme", intent.Query)
	assert.Equal(t, f.clock.Now(), intent.At)

	assert.Equal(t, domain.StateClosed, f.p.State())
	assert.Equal(t, domain.Session{}, f.p.Session())
	assert.Empty(t, f.p.Text())
	assert.Equal(t, 1, f.input.cancelled)
}

func TestResultPresenter_SelectEmitsExactlyOnce(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	ok, err := f.p.Select(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.p.Select(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, _ = f.p.Confirm(context.Background())
	assert.False(t, ok)

	require.Len(t, f.nav.intents, 1)
	assert.Equal(t, "/financial/activities/7", f.nav.intents[0].Route)
}

func TestResultPresenter_SelectOutOfRange(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	ok, err := f.p.Select(context.Background(), 3)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.nav.intents)
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
}

func TestResultPresenter_NavigationFailureNotifies(t *testing.T) {
	f := newPresenterFixture()
	f.nav.err = errors.New("no browser")
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	ok, err := f.p.Confirm(context.Background())

	assert.True(t, ok)
	assert.Error(t, err)
	assert.Equal(t, domain.StateClosed, f.p.State())
	require.Len(t, f.notes.notices, 1)
	assert.Contains(t, f.notes.notices[0].Message, "/clients/42")
}

func TestResultPresenter_BlurGrace(t *testing.T) {
	f := newPresenterFixture()
	f.p.Focus()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	token := f.p.Blur()
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())

	assert.True(t, f.p.BlurElapsed(token))
	assert.Equal(t, domain.StateClosed, f.p.State())
}

func TestResultPresenter_BlurCancelledByFocus(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	token := f.p.Blur()
	f.p.Focus()

	assert.False(t, f.p.BlurElapsed(token))
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
}

func TestResultPresenter_BlurCancelledBySelection(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	token := f.p.Blur()
	_, err := f.p.Select(context.Background(), 0)
	require.NoError(t, err)

	assert.False(t, f.p.BlurElapsed(token))
	require.Len(t, f.nav.intents, 1)
}

func TestResultPresenter_DismissAndReopen(t *testing.T) {
	f := newPresenterFixture()
	f.p.Focus()
	q := f.commit("acme")
	f.p.Apply(settled(q, sampleResults()...))

	f.p.Dismiss()

	assert.Equal(t, domain.StateClosed, f.p.State())
	assert.False(t, f.p.Focused())
	assert.Empty(t, f.nav.intents)

	f.p.Focus()
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
}

func TestResultPresenter_DismissWhileLoadingKeepsBatch(t *testing.T) {
	f := newPresenterFixture()
	q := f.commit("acme")
	f.p.Dismiss()

	assert.True(t, f.p.Apply(settled(q, sampleResults()...)))
	assert.Equal(t, domain.StateClosed, f.p.State())

	f.p.Focus()
	assert.Equal(t, domain.StateOpenWithResults, f.p.State())
}

func TestResultPresenter_NoNavigationWhenClosed(t *testing.T) {
	f := newPresenterFixture()

	ok, err := f.p.Confirm(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.nav.intents)
}

// End to end with the real debouncer: typing a burst yields one search.
func TestResultPresenter_WithDebouncer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	guard := NewStaleResultGuard()
	deb := NewQueryDebouncer(guard, WithClock(clock))
	t.Cleanup(deb.Close)
	nav := &mockNavigator{}
	p := NewResultPresenter(guard, deb, nav)

	p.Input("ac")
	p.Input("acm")
	p.Input("acme")
	clock.Advance(DefaultDebounce)
	waitFired(t, deb)

	q := receive(t, deb)
	require.True(t, p.Commit(q))
	assert.Equal(t, domain.StateLoading, p.State())
	assert.Equal(t, "acme", p.Session().Query)
}
