package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMinQueryLength is the minimum trimmed query length.
const DefaultMinQueryLength = 2

// SearchResult is one entry of the merged result list.
type SearchResult struct {
	// ID is the backend identifier of the record.
	ID int64 `json:"id"`

	// Title is the primary display line.
	Title string `json:"title"`

	// Subtitle is the secondary display line.
	Subtitle string `json:"subtitle"`

	// Type is the domain the record belongs to.
	Type DomainType `json:"type"`

	// Route is the navigation target, derived from Type and ID.
	Route string `json:"route"`

	// Icon is the glyph of the domain.
	Icon string `json:"icon"`
}

// Key returns the (type, id) identity of the result.
func (r SearchResult) Key() string {
	return r.Type.String() + ":" + strconv.FormatInt(r.ID, 10)
}

// Query is a committed search query.
// Generation is assigned once at commit time and never changes.
type Query struct {
	Generation uint64
	Text       string
}

// NormaliseQuery trims surrounding whitespace from raw input.
func NormaliseQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// Acceptable reports whether the trimmed text reaches minLength runes.
func Acceptable(raw string, minLength int) bool {
	return utf8.RuneCountInString(NormaliseQuery(raw)) >= minLength
}

// Outcome describes how a batch settled.
type Outcome string

// Batch outcomes.
const (
	// OutcomeSettled means at least one domain answered.
	OutcomeSettled Outcome = "settled"

	// OutcomeFailed means every domain failed.
	OutcomeFailed Outcome = "failed"

	// OutcomeCancelled means the batch was abandoned before settling.
	OutcomeCancelled Outcome = "cancelled"
)

// String returns the string representation.
func (o Outcome) String() string {
	return string(o)
}

// DomainOutcome records what one domain contributed to a batch.
type DomainOutcome struct {
	// Domain is the domain searched.
	Domain DomainType

	// Count is the number of results taken after capping.
	Count int

	// Err is the failure, nil on success.
	Err error
}

// Failed reports whether the domain search failed.
func (o DomainOutcome) Failed() bool {
	return o.Err != nil
}

// Batch is the settled fan-out for one committed query.
type Batch struct {
	// Generation is the generation of the query the batch was computed for.
	Generation uint64

	// Query is the committed text.
	Query string

	// Results is the merged list, in fixed domain order.
	Results []SearchResult

	// Outcome is how the batch settled.
	Outcome Outcome

	// Domains holds one outcome per searched domain, in fixed domain order.
	Domains []DomainOutcome

	// Err is set when Outcome is failed or cancelled.
	Err error
}

// Empty reports whether the batch carries no results.
func (b Batch) Empty() bool {
	return len(b.Results) == 0
}

// FailedDomains returns the outcomes of the domains that failed.
func (b Batch) FailedDomains() []DomainOutcome {
	var failed []DomainOutcome
	for _, d := range b.Domains {
		if d.Failed() {
			failed = append(failed, d)
		}
	}
	return failed
}
