package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx HTTP response from the API. Detail is
// the server-provided message when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// ConnectionError represents a request that never produced a response:
// DNS failure, refused connection, timeout. Callers present these as
// connectivity problems rather than server rejections.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an APIError
// with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports whether err is a 401-class rejection, the
// signal for an expired or invalid token.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsConnection reports whether err is a transport-level failure.
func IsConnection(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// Message returns a user-facing message for err: the server detail when
// available, a generic connection notice for transport failures, and
// the plain error text otherwise.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if IsConnection(err) {
		return "connection error"
	}
	return err.Error()
}
