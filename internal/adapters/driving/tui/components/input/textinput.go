// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/styles"
)

const (
	// Placeholder is shown while the input is empty.
	Placeholder = "Search clients, services, invoices..."

	// Height is the number of lines the rendered input occupies.
	Height = 3

	loadingHint  = "searching…"
	shortcutHint = "ctrl+k"
)

// SearchInput wraps a bubbles textinput with search-specific styling.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	loading   bool
}

// NewSearchInput creates a new search input component. It starts focused.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input with a loading or shortcut hint.
func (s *SearchInput) View() string {
	field := s.styles.InputField
	if s.textinput.Focused() {
		field = s.styles.FocusedInputField
	}

	hint := shortcutHint
	if s.loading {
		hint = loadingHint
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, s.textinput.View(), "  ", s.styles.Muted.Render(hint))
	return field.Render(line)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetLoading toggles the loading hint.
func (s *SearchInput) SetLoading(loading bool) {
	s.loading = loading
}

// Loading reports whether the loading hint is shown.
func (s *SearchInput) Loading() bool {
	return s.loading
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for border, padding and hint
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
