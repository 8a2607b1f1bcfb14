// Package loggly talks to a Loggly-style event search API.
package loggly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3

	maxErrorBody = 512
)

// Getter fetches and parses one JSON document
type Getter interface {
	Get(ctx context.Context, uri string) (gjson.Result, error)
}

// ClientConfig configures a Client
type ClientConfig struct {
	APIKey            string
	Timeout           time.Duration // per attempt
	Attempts          int           // total attempts per GET
	RetryDelay        time.Duration // wait between attempts; zero retries immediately
	RequestsPerSecond float64       // zero disables pacing
	Transport         http.RoundTripper
}

// Client issues authenticated GETs with bounded retry
type Client struct {
	apiKey     string
	http       *http.Client
	attempts   int
	retryDelay time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a Client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		http:       &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// Get fetches uri and parses the body as JSON. Any failure is retried until
// the attempt budget is spent; the last failure is returned as a *FetchError.
func (c *Client) Get(ctx context.Context, uri string) (gjson.Result, error) {
	c.logger.Debug("GET", zap.String("uri", uri))

	var (
		attempt int
		stopErr error
	)
	op := func() (gjson.Result, error) {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			stopErr = fmt.Errorf("rate limiter: %w", err)
			return gjson.Result{}, backoff.Permanent(stopErr)
		}
		res, err := c.do(ctx, uri)
		if err != nil && ctx.Err() != nil {
			stopErr = ctx.Err()
			return gjson.Result{}, backoff.Permanent(stopErr)
		}
		return res, err
	}

	res, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(uint(c.attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("request attempt failed",
				zap.String("uri", uri),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.attempts),
				zap.Duration("retry_in", next),
				zap.Error(err))
		}),
	)
	if err == nil {
		if attempt > 1 {
			c.logger.Debug("request succeeded after retry", zap.Int("attempt", attempt))
		}
		return res, nil
	}

	if stopErr != nil {
		return gjson.Result{}, stopErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return gjson.Result{}, ctxErr
	}
	c.logger.Debug("request failed", zap.String("uri", uri), zap.Int("attempts", attempt), zap.Error(err))
	return gjson.Result{}, &FetchError{URI: uri, Attempts: attempt, Err: err}
}

func (c *Client) do(ctx context.Context, uri string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return gjson.Result{}, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.New("response body is not valid JSON")
	}
	return gjson.ParseBytes(body), nil
}
