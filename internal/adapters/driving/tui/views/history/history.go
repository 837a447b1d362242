// Package history provides the recent navigations view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
)

// ErrDisabled is reported when navigation history is turned off.
var ErrDisabled = errors.New("navigation history is disabled")

// View lists recent navigations.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	history driving.HistoryService
	clock   clockwork.Clock
	ctx     context.Context

	entries  []domain.HistoryEntry
	selected int
	width    int
	height   int
	err      error
	loading  bool
}

// NewView creates a new history view. A nil service renders the view disabled.
func NewView(s *styles.Styles, km *keymap.KeyMap, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		history: history,
		clock:   clockwork.NewRealClock(),
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for history operations.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetClock sets the clock used for relative times.
func (v *View) SetClock(c clockwork.Clock) {
	v.clock = c
}

// Init loads recent navigations.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload returns a command that loads recent navigations.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	history, ctx := v.history, v.ctx
	return func() tea.Msg {
		if history == nil {
			return messages.HistoryLoaded{Err: ErrDisabled}
		}
		entries, err := history.Recent(ctx)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		v.entries = msg.Entries
		if v.selected >= len(v.entries) {
			v.selected = 0
		}
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.Reload()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}

	case keymap.Matches(keyStr, v.keymap.Select):
		if v.history == nil || v.selected >= len(v.entries) {
			return nil
		}
		entry := v.entries[v.selected]
		history, ctx := v.history, v.ctx
		return func() tea.Msg {
			return messages.Navigated{Route: entry.Route, Err: history.Reopen(ctx, entry.ID)}
		}

	case keymap.Matches(keyStr, v.keymap.ClearHistory):
		if v.history == nil {
			return nil
		}
		history, ctx := v.history, v.ctx
		return func() tea.Msg {
			return messages.HistoryCleared{Err: history.Clear(ctx)}
		}
	}

	return nil
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Recent"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case errors.Is(v.err, ErrDisabled):
		b.WriteString(v.styles.Muted.Render("History is disabled. Enable it with: finvo config set history.enabled true"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No recent navigations."))
	default:
		now := v.clock.Now()
		for i := range v.entries {
			b.WriteString(v.renderEntry(i, &v.entries[i], now))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderEntry renders one navigation as a title line and a detail line.
func (v *View) renderEntry(index int, e *domain.HistoryEntry, now time.Time) string {
	indicator := "  "
	title := e.Type.Icon() + " " + e.Title
	if index == v.selected {
		indicator = "> "
		title = v.styles.Selected.Render(indicator + title)
	} else {
		title = v.styles.Normal.Render(indicator + title)
	}

	badge := v.styles.Badge(e.Type).Render(e.Type.String())
	detail := e.Route
	if e.Query != "" {
		detail += fmt.Sprintf(" • %q", e.Query)
	}
	when := humanize.RelTime(e.VisitedAt, now, "ago", "from now")

	return title + " " + badge + "\n" +
		v.styles.Muted.Render("     "+detail+" • "+when)
}

// renderHelp renders the key hints.
func (v *View) renderHelp() string {
	hints := make([]string, 0, 5)
	for _, b := range v.keymap.HistoryHelp() {
		hints = append(hints, helpHint(b))
	}
	return v.styles.Help.Render(strings.Join(hints, " | "))
}

func helpHint(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
