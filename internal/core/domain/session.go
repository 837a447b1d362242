package domain

// SessionState is the derived display state of a search session.
type SessionState int

// Session states.
const (
	// StateClosed means the result panel is hidden.
	StateClosed SessionState = iota

	// StateLoading means a committed query is in flight.
	StateLoading

	// StateOpenWithResults means the panel shows at least one result.
	StateOpenWithResults

	// StateOpenEmpty means the query settled with no results.
	StateOpenEmpty

	// StateFailed means every domain failed for the query.
	StateFailed
)

// String returns the string representation.
func (s SessionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateOpenWithResults:
		return "open_with_results"
	case StateOpenEmpty:
		return "open_empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the transient state of the current query.
// It is replaced wholesale on each accepted commit and on every reset.
type Session struct {
	// Generation of the committed query, 0 when none.
	Generation uint64

	// Query is the committed text.
	Query string

	// Open is true when the panel is visible.
	Open bool

	// Loading is true while the batch for Generation is outstanding.
	Loading bool

	// Failed is true when every domain failed.
	Failed bool

	// Results is the merged list.
	Results []SearchResult

	// Highlight is the index of the highlighted result.
	Highlight int
}

// State derives the display state.
func (s Session) State() SessionState {
	switch {
	case !s.Open:
		return StateClosed
	case s.Loading:
		return StateLoading
	case s.Failed:
		return StateFailed
	case len(s.Results) == 0:
		return StateOpenEmpty
	default:
		return StateOpenWithResults
	}
}

// Highlighted returns the highlighted result, if any.
func (s Session) Highlighted() (SearchResult, bool) {
	if s.Highlight < 0 || s.Highlight >= len(s.Results) {
		return SearchResult{}, false
	}
	return s.Results[s.Highlight], true
}

// EmptyResultsMessage is the empty state headline for a query.
func EmptyResultsMessage(query string) string {
	return "No results found for \"" + query + "\""
}
