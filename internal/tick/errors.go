package tick

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the remote entity does not exist (HTTP 404).
// It is always reachable via errors.Is on the wrapping *APIError.
var ErrNotFound = errors.New("not found")

// ErrNoMatch signals that a name fragment resolved to no entity. It is
// distinct from a failed list fetch, which propagates as its own error.
var ErrNoMatch = errors.New("no matching name")

// APIError is a non-2xx response from the Tick API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Tick API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Tick API returned status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return nil
}
