package loggly

import (
	"errors"
	"fmt"
)

var (
	// ErrRetriesExhausted matches any FetchError
	ErrRetriesExhausted = errors.New("retries exhausted")
	// ErrPageLimit is returned when a cursor chain runs past the configured page ceiling
	ErrPageLimit = errors.New("page limit reached")
)

// FetchError is the terminal failure of a GET after every attempt failed
type FetchError struct {
	URI      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("GET %s failed after %d attempts: %v", e.URI, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRetriesExhausted) match
func (e *FetchError) Is(target error) bool { return target == ErrRetriesExhausted }

// StatusError is a non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is a response missing a field the caller needs
type MalformedResponseError struct {
	URI   string
	Field string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: missing %q", e.URI, e.Field)
}
