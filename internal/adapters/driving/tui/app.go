package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// searchView is the search box with its result panel.
	searchView *search.View

	// historyView lists recent navigations.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool

	log logger.Scoped
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	clock clockwork.Clock
}

// WithClock replaces the wall clock of the timers, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(o *appOptions) { o.clock = c }
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	o := appOptions{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}

	settings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = *loaded
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	searchView, err := search.NewView(s, km, search.Config{
		Aggregator: ports.Aggregator,
		Navigator:  ports.Navigator,
		Settings:   settings.Search,
		Clock:      o.clock,
	})
	if err != nil {
		return nil, fmt.Errorf("creating search view: %w", err)
	}

	historyView := history.NewView(s, km, ports.History)
	historyView.SetClock(o.clock)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  searchView,
		historyView: historyView,
		currentView: messages.ViewSearch,
		log:         logger.For("tui"),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("finvo - Global Search"),
		a.searchView.Init(),
		a.waitForConfig(),
	)
}

// waitForConfig delivers the next configuration change to the loop.
func (a *App) waitForConfig() tea.Cmd {
	changes := a.ports.ConfigChanges
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.ConfigReloaded{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHistory {
			a.historyView, cmd = a.historyView.Update(msg)
			return a, cmd
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Reload()
		}
		return a, nil

	case messages.HistoryLoaded, messages.HistoryCleared:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.Navigated:
		if a.currentView == messages.ViewHistory {
			if msg.Err != nil {
				a.log.Warn("reopen %s: %v", msg.Route, msg.Err)
				a.searchView.Notify(domain.Notice{Level: domain.NoticeError, Message: "Could not open " + msg.Route})
			}
			a.currentView = messages.ViewSearch
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ConfigReloaded:
		a.reloadSettings()
		return a, a.waitForConfig()

	case messages.ErrorOccurred:
		a.searchView.Notify(domain.Notice{Level: domain.NoticeError, Message: msg.Err.Error()})
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Commits, batches, blur timers and cursor blinks belong to the search view
	// whichever view is showing.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// reloadSettings applies fresh search settings to the live components.
func (a *App) reloadSettings() {
	if a.ports.Settings == nil {
		return
	}
	settings, err := a.ports.Settings.Get()
	if err != nil {
		a.log.Warn("reload settings: %v", err)
		return
	}
	a.searchView.ApplySettings(settings.Search)
	a.log.Info("configuration reloaded")
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.currentView == messages.ViewHistory {
		return a.historyView.View()
	}
	return a.searchView.View()
}

// Run starts the bubbletea program and blocks until it exits.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// Close releases the timers and in-flight searches of the views.
func (a *App) Close() {
	a.searchView.Close()
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// HistoryView returns the history view.
func (a *App) HistoryView() *history.View {
	return a.historyView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.historyView.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
