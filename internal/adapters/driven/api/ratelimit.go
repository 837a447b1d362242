package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is the sustained request rate across all domains.
	DefaultRequestsPerSecond = 20.0

	// DefaultBurst lets one full fan-out through without waiting.
	DefaultBurst = 10

	// DefaultRetryAfter is the backoff applied to a 429 without Retry-After.
	DefaultRetryAfter = 5 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles backend requests with a token bucket and backs
// off after the backend answered 429.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	clock   clockwork.Clock
}

// NewRateLimiter creates a limiter. Non-positive values select the defaults.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		clock:   clockwork.NewRealClock(),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff set by RecordRetryAfter.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := retryAt.Sub(r.clock.Now()); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(wait):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRetryAfter sets a backoff period from a 429 response.
func (r *RateLimiter) RecordRetryAfter(resp *http.Response) {
	backoff := DefaultRetryAfter
	if resp != nil {
		if secs, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter)); err == nil && secs > 0 {
			backoff = time.Duration(secs) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = r.clock.Now().Add(backoff)
}

// RetryAt returns when the current backoff ends. Zero if none was recorded.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if r.clock.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
