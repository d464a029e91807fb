package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when the refresh cycle itself fails
// and the persisted session has been purged
var ErrSessionExpired = errors.New("session expired, please login again")

// Error is a non-2xx response from the storefront backend. Message
// carries the server-provided message when the server sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ServerMessage extracts the server-provided failure message from err,
// falling back to the given generic message. This is the single place
// that decides what the user gets to see for a failed call.
func ServerMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsAuthFailure reports whether err is an authentication failure (401)
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
