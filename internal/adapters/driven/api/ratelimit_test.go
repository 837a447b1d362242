package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(0, 0)

	assert.InDelta(t, DefaultRequestsPerSecond, float64(r.limiter.Limit()), 0.001)
	assert.Equal(t, DefaultBurst, r.limiter.Burst())
	assert.True(t, r.RetryAt().IsZero())
}

func TestRateLimiter_BurstThenThrottle(t *testing.T) {
	r := NewRateLimiter(1, 2)

	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.False(t, r.Allow())
}

func TestRateLimiter_RecordRetryAfter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(100, 10)
	r.clock = clock

	resp := &http.Response{Header: http.Header{HeaderRetryAfter: []string{"3"}}}
	r.RecordRetryAfter(resp)

	assert.Equal(t, clock.Now().Add(3*time.Second), r.RetryAt())
	assert.False(t, r.Allow())

	clock.Advance(3 * time.Second)
	assert.True(t, r.Allow())
}

func TestRateLimiter_RecordRetryAfterDefault(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(100, 10)
	r.clock = clock

	r.RecordRetryAfter(&http.Response{Header: http.Header{}})

	assert.Equal(t, clock.Now().Add(DefaultRetryAfter), r.RetryAt())
}

func TestRateLimiter_WaitHonoursBackoff(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(100, 10)
	r.clock = clock
	r.RecordRetryAfter(&http.Response{Header: http.Header{HeaderRetryAfter: []string{"1"}}})

	done := make(chan error, 1)
	go func() { done <- r.Wait(context.Background()) }()

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	select {
	case <-done:
		t.Fatal("wait returned during backoff")
	default:
	}

	clock.Advance(time.Second)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after backoff")
	}
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(100, 10)
	r.clock = clock
	r.RecordRetryAfter(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}
