// Package learning implements the feedback-driven example store: durable
// persistence of generated letters, feedback ingestion, example selection, and
// summary statistics.
package learning

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when feedback is submitted for an unknown letter id.
var ErrNotFound = errors.New("letter not found")

// ValidationError represents malformed input rejected before any storage mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// StorageError represents a failure of the underlying durable medium. The
// operation that returned it must be treated as not persisted.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
