// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

const (
	// HeaderLines is the number of lines above the first row.
	HeaderLines = 2

	// RowLines is the number of lines each result occupies.
	RowLines = 2

	// NavigationHint is shown next to the result count.
	NavigationHint = "↑↓ navigate • ↵ select"
)

// ResultList displays merged search results. The highlight is owned by the
// caller and only mirrored here.
type ResultList struct {
	results   []domain.SearchResult
	highlight int
	styles    *styles.Styles
	width     int
	height    int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// CountLabel returns the result count header, e.g. "1 result found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 result found"
	}
	return fmt.Sprintf("%d results found", n)
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.results)*RowLines+HeaderLines)

	count := r.styles.Subtitle.Render(CountLabel(len(r.results)))
	hint := r.styles.Muted.Render(NavigationHint)
	gap := r.width - lipgloss.Width(count) - lipgloss.Width(hint)
	if gap < 2 {
		gap = 2
	}
	lines = append(lines, count+strings.Repeat(" ", gap)+hint, "")

	start, end := r.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// visibleRange returns the window of rows that keeps the highlight in view.
func (r *ResultList) visibleRange() (int, int) {
	visible := r.visibleCount()
	start := 0
	if r.highlight >= visible {
		start = r.highlight - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}
	return start, end
}

func (r *ResultList) visibleCount() int {
	n := (r.height - HeaderLines) / RowLines
	if n < 1 {
		n = 1
	}
	return n
}

// renderResult formats a single result as a title line and a subtitle line.
func (r *ResultList) renderResult(index int, result domain.SearchResult) string {
	indicator := "  "
	if index == r.highlight {
		indicator = "> "
	}

	icon := result.Icon
	if icon == "" {
		icon = result.Type.Icon()
	}

	badge := r.styles.Badge(result.Type).Render(result.Type.String())

	maxTitle := r.width - lipgloss.Width(badge) - 10
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(result.Title, maxTitle)

	var titleLine string
	if index == r.highlight {
		titleLine = r.styles.Selected.Render(indicator+icon+" "+title) + " " + badge
	} else {
		titleLine = r.styles.Normal.Render(indicator+icon+" "+title) + " " + badge
	}

	subtitle := r.styles.Muted.Render("     " + truncate(result.Subtitle, r.width-6))
	return titleLine + "\n" + subtitle
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetResults replaces the rows and the mirrored highlight.
func (r *ResultList) SetResults(results []domain.SearchResult, highlight int) {
	r.results = results
	r.highlight = highlight
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Highlight returns the mirrored highlight index.
func (r *ResultList) Highlight() int {
	return r.highlight
}

// RowAt maps a line offset within the rendered list to a result index.
// It returns -1 when the line is not on a result.
func (r *ResultList) RowAt(y int) int {
	if y < HeaderLines || len(r.results) == 0 {
		return -1
	}
	start, end := r.visibleRange()
	i := start + (y-HeaderLines)/RowLines
	if i >= end {
		return -1
	}
	return i
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
