package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

const (
	// DefaultTimeout bounds every backend request.
	DefaultTimeout = 10 * time.Second

	// HeaderRequestID correlates a request with backend logs.
	HeaderRequestID = "X-Request-ID"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:8000/api.
	BaseURL string

	// Token is an optional bearer token.
	Token string

	// Timeout bounds every request. Zero selects DefaultTimeout.
	Timeout time.Duration

	// RateLimit and Burst configure the shared token bucket.
	RateLimit float64
	Burst     int

	// HTTPClient overrides the transport. Token and Timeout are ignored when set.
	HTTPClient *http.Client

	// UserAgent is sent with every request.
	UserAgent string
}

// Client talks to the finvo REST backend.
type Client struct {
	http        *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *RateLimiter
	log         logger.Scoped
}

// NewClient creates a backend client.
// With a token, requests carry it as a bearer through an oauth2 static source.
func NewClient(ctx context.Context, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.Token != "" {
			ts := oauth2.StaticTokenSource(
				&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"},
			)
			httpClient = oauth2.NewClient(ctx, ts)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = timeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "finvo-cli"
	}

	return &Client{
		http:        httpClient,
		baseURL:     domain.NormaliseAPIURL(cfg.BaseURL),
		userAgent:   userAgent,
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
		log:         logger.For("api"),
	}
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// get fetches path with params and returns the body of a 2xx answer.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, c.classify(ctx, fmt.Errorf("rate limit wait: %w", err))
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug("GET %s -> %d in %s (request %s)", target, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimiter.RecordRetryAfter(resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.classify(ctx, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// classify maps a transport error onto the domain error classes.
// Cancellation by the caller is returned as the context error.
func (c *Client) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
}

// list fetches path and decodes the items with toRecord.
func list[T any](
	ctx context.Context, c *Client, path string, params url.Values, toRecord func(T) domain.Record,
) ([]domain.Record, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrServer, path, err)
	}
	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		records = append(records, toRecord(item))
	}
	return records, nil
}
