package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// StatusError is a non-2xx answer from the backend.
// It matches domain.ErrServer, and domain.ErrRateLimited for 429.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("finvo api: %s (URL: %s)", e.Status, e.URL)
}

// Unwrap classifies every status error as a server error.
func (e *StatusError) Unwrap() error {
	return domain.ErrServer
}

// Is reports whether a 429 answer is being matched against ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}
	return false
}
