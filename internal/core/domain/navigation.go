package domain

import "time"

// NavigationIntent asks the router to show one record.
type NavigationIntent struct {
	// Route is the navigation target, e.g. /invoices/9.
	Route string

	// Type is the domain of the record.
	Type DomainType

	// ID is the backend identifier of the record.
	ID int64

	// Title is the display title at selection time.
	Title string

	// Query is the committed text that produced the result.
	Query string

	// At is when the selection happened.
	At time.Time
}

// IntentFor builds the intent for a selected result.
func IntentFor(r SearchResult, query string, at time.Time) NavigationIntent {
	return NavigationIntent{
		Route: r.Route,
		Type:  r.Type,
		ID:    r.ID,
		Title: r.Title,
		Query: query,
		At:    at,
	}
}

// HistoryEntry is a persisted navigation.
type HistoryEntry struct {
	ID        string
	Route     string
	Type      DomainType
	RecordID  int64
	Title     string
	Query     string
	VisitedAt time.Time
}

// Intent rebuilds the navigation intent of the entry.
func (e HistoryEntry) Intent(at time.Time) NavigationIntent {
	return NavigationIntent{
		Route: e.Route,
		Type:  e.Type,
		ID:    e.RecordID,
		Title: e.Title,
		Query: e.Query,
		At:    at,
	}
}

// NoticeLevel is the severity of a user-facing notice.
type NoticeLevel string

// Notice levels.
const (
	NoticeInfo  NoticeLevel = "info"
	NoticeWarn  NoticeLevel = "warn"
	NoticeError NoticeLevel = "error"
)

// Notice is a transient message for the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// SearchFailedMessage is shown when every domain failed.
const SearchFailedMessage = "Search failed. Please try again."

// EmptyResultsHint is shown below the empty state.
const EmptyResultsHint = "Try searching for clients, services, invoices, or expenses"
