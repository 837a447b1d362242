// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finvo-cli/internal/core/services"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Screen layout, in lines from the top of the view.
const (
	inputTop = 2
	panelTop = inputTop + input.Height + 1
)

// limiter is implemented by aggregators whose per-domain cap can change at runtime.
type limiter interface {
	SetLimit(n int)
}

// Config holds the collaborators of the search view.
type Config struct {
	// Aggregator runs committed queries. Required.
	Aggregator driving.SearchAggregator

	// Navigator receives selections. Required.
	Navigator driven.Navigator

	// Settings holds the initial search behaviour.
	Settings domain.SearchSettings

	// Clock drives the debounce and blur timers. Defaults to the wall clock.
	Clock clockwork.Clock
}

// View is the search box with its result panel and status bar.
// The presenter is only touched from Update.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	aggregator driving.SearchAggregator
	debouncer  *services.QueryDebouncer
	presenter  *services.ResultPresenter
	clock      clockwork.Clock
	blurGrace  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int

	log logger.Scoped
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, cfg Config) (*View, error) {
	if cfg.Aggregator == nil {
		return nil, ErrNoAggregator
	}
	if cfg.Navigator == nil {
		return nil, ErrNoNavigator
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	settings := cfg.Settings
	if settings.BlurGrace <= 0 {
		settings.BlurGrace = domain.DefaultAppSettings().Search.BlurGrace
	}

	guard := services.NewStaleResultGuard()
	debouncer := services.NewQueryDebouncer(guard,
		services.WithClock(clock),
		services.WithDelay(settings.Debounce),
		services.WithMinLength(settings.MinLength),
	)

	bar := status.NewBar(s, km)
	presenter := services.NewResultPresenter(guard, debouncer, cfg.Navigator)
	presenter.SetNotifier(bar)
	presenter.SetClock(clock)
	presenter.Focus()

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewResultList(s),
		statusbar:  bar,
		aggregator: cfg.Aggregator,
		debouncer:  debouncer,
		presenter:  presenter,
		clock:      clock,
		blurGrace:  settings.BlurGrace,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		log:        logger.For("tui.search"),
	}
	if settings.PerDomainLimit > 0 {
		v.setLimit(settings.PerDomainLimit)
	}
	return v, nil
}

// WithContext sets the parent context of searches and navigations.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.WaitForCommit())
}

// WaitForCommit returns a command that delivers the next committed query.
// It yields nil once the view is closed.
func (v *View) WaitForCommit() tea.Cmd {
	commits := v.debouncer.Commits()
	return func() tea.Msg {
		q, ok := <-commits
		if !ok {
			return nil
		}
		return messages.QueryCommitted{Query: q}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd = v.handleKeyMsg(msg)

	case tea.MouseMsg:
		cmd = v.handleMouseMsg(msg)

	case messages.QueryCommitted:
		cmd = v.WaitForCommit()
		if v.presenter.Commit(msg.Query) {
			cmd = tea.Batch(cmd, v.search(msg.Query))
		}

	case messages.BatchSettled:
		v.presenter.Apply(msg.Batch)

	case messages.BlurElapsed:
		v.presenter.BlurElapsed(msg.Token)

	case messages.Navigated:
		if msg.Err == nil {
			v.statusbar.Notify(domain.Notice{Level: domain.NoticeInfo, Message: "Opened " + msg.Route})
		}

	default:
		v.input, cmd = v.input.Update(msg)
	}

	v.sync()
	return v, cmd
}

// search runs q on the aggregator, cancelling the previous generation.
func (v *View) search(q domain.Query) tea.Cmd {
	v.cancelInFlight()
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	aggregator := v.aggregator
	return func() tea.Msg {
		return messages.BatchSettled{Batch: aggregator.Search(ctx, q)}
	}
}

func (v *View) cancelInFlight() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Focus):
		v.presenter.Focus()
		return v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Dismiss):
		v.presenter.Dismiss()
		v.input.Blur()
		return nil

	case keymap.Matches(keyStr, v.keymap.Blur):
		return v.blur()

	case keymap.Matches(keyStr, v.keymap.Up):
		v.presenter.MoveUp()
		return nil

	case keymap.Matches(keyStr, v.keymap.Down):
		v.presenter.MoveDown()
		return nil

	case keymap.Matches(keyStr, v.keymap.Select):
		return v.confirm()

	case keymap.Matches(keyStr, v.keymap.History):
		return func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHistory}
		}
	}

	if !v.presenter.Focused() {
		return nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		v.statusbar.Notify(domain.Notice{})
		v.presenter.Input(after)
	}
	return cmd
}

// blur drops input focus and schedules the grace delay on the view clock.
func (v *View) blur() tea.Cmd {
	token := v.presenter.Blur()
	v.input.Blur()
	after := v.clock.After(v.blurGrace)
	return func() tea.Msg {
		<-after
		return messages.BlurElapsed{Token: token}
	}
}

// confirm selects the highlighted result.
func (v *View) confirm() tea.Cmd {
	result, ok := v.presenter.Session().Highlighted()
	if !ok {
		return nil
	}
	return v.selectIndex(v.presenter.Session().Highlight, result.Route)
}

func (v *View) selectIndex(i int, route string) tea.Cmd {
	navigated, err := v.presenter.Select(v.ctx, i)
	if !navigated {
		return nil
	}
	v.cancelInFlight()
	v.input.Reset()
	if err != nil {
		v.log.Warn("%v", err)
	}
	return func() tea.Msg {
		return messages.Navigated{Route: route, Err: err}
	}
}

// handleMouseMsg selects a clicked row or dismisses on a click outside.
func (v *View) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	row := -1
	if v.presenter.State() == domain.StateOpenWithResults {
		row = v.list.RowAt(msg.Y - panelTop)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if row >= 0 {
			v.presenter.Highlight(row)
		}
		return nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if row >= 0 {
			return v.selectIndex(row, v.presenter.Session().Results[row].Route)
		}
		if msg.Y >= inputTop && msg.Y < inputTop+input.Height {
			v.presenter.Focus()
			return v.input.Focus()
		}
		if v.onPanel(msg.Y) {
			return nil
		}
		v.presenter.Dismiss()
		v.input.Blur()
	}
	return nil
}

// onPanel reports whether line y falls on the visible result panel.
func (v *View) onPanel(y int) bool {
	if v.presenter.State() == domain.StateClosed {
		return false
	}
	return y >= panelTop && y < panelTop+lipgloss.Height(v.renderPanel())
}

// sync mirrors the session into the components.
func (v *View) sync() {
	session := v.presenter.Session()
	state := session.State()

	v.input.SetLoading(state == domain.StateLoading)
	v.list.SetResults(session.Results, session.Highlight)

	switch state {
	case domain.StateLoading:
		v.statusbar.SetState(status.StateSearching)
	case domain.StateOpenWithResults:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(len(session.Results))
	case domain.StateClosed, domain.StateOpenEmpty, domain.StateFailed:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetResultCount(0)
	}
}

// View renders the search view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Finvo"))
	b.WriteString(v.styles.Muted.Render("  global search"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	panel := v.renderPanel()
	b.WriteString(panel)

	used := panelTop + lipgloss.Height(panel)
	if panel == "" {
		used = panelTop
	}
	if pad := v.height - used - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

// renderPanel renders the result panel for the current state.
func (v *View) renderPanel() string {
	session := v.presenter.Session()

	switch session.State() {
	case domain.StateLoading:
		return v.styles.Muted.Render("Searching...")
	case domain.StateOpenWithResults:
		return v.list.View()
	case domain.StateOpenEmpty:
		return v.styles.Normal.Render(domain.EmptyResultsMessage(session.Query)) + "\n" +
			v.styles.Muted.Render(domain.EmptyResultsHint)
	case domain.StateFailed:
		return v.styles.Error.Render(domain.SearchFailedMessage)
	case domain.StateClosed:
		return ""
	}
	return ""
}

// ApplySettings updates the live components after a configuration reload.
func (v *View) ApplySettings(s domain.SearchSettings) {
	v.debouncer.SetDelay(s.Debounce)
	v.debouncer.SetMinLength(s.MinLength)
	if s.PerDomainLimit > 0 {
		v.setLimit(s.PerDomainLimit)
	}
	if s.BlurGrace > 0 {
		v.blurGrace = s.BlurGrace
	}
	v.log.Debug("applied settings: debounce=%s min=%d limit=%d", s.Debounce, s.MinLength, s.PerDomainLimit)
}

func (v *View) setLimit(n int) {
	if l, ok := v.aggregator.(limiter); ok {
		l.SetLimit(n)
	}
}

// Notify shows a notice in the status bar.
func (v *View) Notify(n domain.Notice) {
	v.statusbar.Notify(n)
}

// Presenter returns the interaction state machine.
func (v *View) Presenter() *services.ResultPresenter {
	return v.presenter
}

// Input returns the search input component.
func (v *View) Input() *input.SearchInput {
	return v.input
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-panelTop-2)
	v.statusbar.SetWidth(width)
}

// Close stops the debouncer and cancels any in-flight search.
func (v *View) Close() {
	v.cancelInFlight()
	v.debouncer.Close()
}

