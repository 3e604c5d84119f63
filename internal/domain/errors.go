package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// HTTPError reports a non-2xx backend response. Message carries the body's
// "message" field when the backend sent one, otherwise it stays empty and
// Error falls back to a generic per-status text.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets a 404 response match ErrNotFound through errors.Is, so callers can
// render a "not found" state without inspecting status codes.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// ValidationError reports client-side input checks that fail before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
