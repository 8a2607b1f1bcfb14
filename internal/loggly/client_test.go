package loggly

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_Get(t *testing.T) {
	t.Run("sends bearer token and parses body", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = io.WriteString(w, `{"total_events": 42}`)
		}))
		t.Cleanup(srv.Close)

		c := NewClient(ClientConfig{APIKey: "xyz"}, nil)
		res, err := c.Get(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "bearer xyz", gotAuth)
		assert.Equal(t, int64(42), res.Get("total_events").Int())
	})

	t.Run("stops after three failed attempts", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("connection reset by peer")
		})

		c := NewClient(ClientConfig{APIKey: "xyz", Transport: transport}, nil)
		res, err := c.Get(context.Background(), "https://logs.example.com/apiv2/events/iterate?q=x")

		require.Error(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.True(t, errors.Is(err, ErrRetriesExhausted))
		assert.False(t, res.Exists())

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, 3, fe.Attempts)
		assert.Contains(t, fe.Err.Error(), "connection reset by peer")
	})

	t.Run("succeeds when a retry works", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return nil, errors.New("timeout")
			}
			return jsonResponse(http.StatusOK, `{"events": []}`), nil
		})

		c := NewClient(ClientConfig{Transport: transport}, nil)
		res, err := c.Get(context.Background(), "https://logs.example.com/x")

		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.True(t, res.Get("events").IsArray())
	})

	t.Run("retries non-2xx statuses", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return jsonResponse(http.StatusServiceUnavailable, "upstream busy"), nil
		})

		c := NewClient(ClientConfig{Transport: transport}, nil)
		_, err := c.Get(context.Background(), "https://logs.example.com/x")

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
		assert.Equal(t, "upstream busy", se.Body)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("retries invalid JSON", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return jsonResponse(http.StatusOK, "<html>oops</html>"), nil
		})

		c := NewClient(ClientConfig{Transport: transport}, nil)
		_, err := c.Get(context.Background(), "https://logs.example.com/x")

		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("honours a custom attempt budget", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("boom")
		})

		c := NewClient(ClientConfig{Attempts: 5, Transport: transport}, nil)
		_, err := c.Get(context.Background(), "https://logs.example.com/x")

		require.Error(t, err)
		assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return nil, errors.New("boom")
		})

		c := NewClient(ClientConfig{Transport: transport, RetryDelay: time.Second}, nil)
		_, err := c.Get(ctx, "https://logs.example.com/x")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("waits the retry delay between attempts", func(t *testing.T) {
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("boom")
		})

		c := NewClient(ClientConfig{Transport: transport, RetryDelay: 30 * time.Millisecond}, nil)
		start := time.Now()
		_, err := c.Get(context.Background(), "https://logs.example.com/x")

		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
	})

	t.Run("cancelled before the first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls int32
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return jsonResponse(http.StatusOK, `{}`), nil
		})

		c := NewClient(ClientConfig{Transport: transport, RequestsPerSecond: 1}, nil)
		_, err := c.Get(ctx, "https://logs.example.com/x")

		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrRetriesExhausted)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("rate limiter paces attempts", func(t *testing.T) {
		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{}`), nil
		})

		c := NewClient(ClientConfig{Transport: transport, RequestsPerSecond: 20}, nil)
		start := time.Now()
		for i := 0; i < 3; i++ {
			_, err := c.Get(context.Background(), "https://logs.example.com/x")
			require.NoError(t, err)
		}
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})
}
