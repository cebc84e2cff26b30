package pipeline

import (
	"errors"
	"fmt"
)

// Failure taxonomy for fatal steps. Non-fatal step failures are logged and
// recorded in the Result, never surfaced as errors.
var (
	// ErrNotFound covers unknown tokens and Draft forms alike, so a Draft's
	// contents never leak to unauthenticated callers.
	ErrNotFound = errors.New("pipeline: form not found")

	// ErrBadRequest marks a malformed or invalid submission request.
	ErrBadRequest = errors.New("pipeline: bad request")

	// ErrPersistence marks a failed submission row write. Nothing further
	// runs after it.
	ErrPersistence = errors.New("pipeline: persistence failure")

	// ErrRender marks a failed document render. The submission row is
	// already durable when this fires.
	ErrRender = errors.New("pipeline: render failure")
)

// ValidationError carries per-field messages keyed the same way the form
// surface keys them, so handlers can return them inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pipeline: validation failed for %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }
