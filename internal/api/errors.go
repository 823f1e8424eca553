package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for 401 and 403 responses. Callers drop
	// the admin session when they see it.
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrNotFound     = errors.New("not found")
	// ErrUnavailable means the circuit breaker is refusing calls.
	ErrUnavailable = errors.New("backend unavailable")
)

// StatusError is a non-2xx answer from the backend. Message carries the
// backend's "error" or "message" field when it sent one.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// BackendMessage returns the backend-supplied message of err, if any.
func BackendMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
