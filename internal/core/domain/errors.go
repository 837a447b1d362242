package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown domain type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrQueryTooShort indicates the trimmed query is below the minimum length.
	ErrQueryTooShort = errors.New("query too short")

	// Search Errors.

	// ErrNoSearchers indicates the aggregator was built without any domain searcher.
	ErrNoSearchers = errors.New("no domain searchers configured")

	// ErrDuplicateDomain indicates two searchers claim the same domain.
	ErrDuplicateDomain = errors.New("duplicate domain searcher")

	// ErrAllDomainsFailed indicates every domain search of a batch failed.
	// It is joined with the individual domain errors.
	ErrAllDomainsFailed = errors.New("all domain searches failed")

	// ErrSearchPanic indicates a domain searcher panicked.
	ErrSearchPanic = errors.New("domain search panicked")

	// Backend Errors.

	// ErrNetwork indicates the backend could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrServer indicates the backend answered with an error or an unreadable body.
	ErrServer = errors.New("server error")

	// ErrTimeout indicates the backend did not answer in time.
	ErrTimeout = errors.New("request timed out")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Navigation Errors.

	// ErrNoOpener indicates no platform command is known to open a URL.
	ErrNoOpener = errors.New("no URL opener for this platform")
)
