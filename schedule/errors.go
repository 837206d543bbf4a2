/*
errors.go - Centralized error types for the schedule domain

PURPOSE:
  All domain error types in one place. The computation core in hours/
  deliberately returns no errors (malformed data degrades to zero);
  these sentinels cover the store and API layers.

USAGE:
  if errors.Is(err, schedule.ErrWorkerNotFound) {
      writeError(w, http.StatusNotFound, ...)
  }
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCompanyNotFound is returned when a referenced company doesn't exist.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrWorkerNotFound is returned when a referenced worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrRowNotFound is returned when a referenced schedule row doesn't exist.
	ErrRowNotFound = errors.New("schedule row not found")

	// ErrHolidayNotFound is returned when a referenced holiday doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateID is returned when an insert reuses an existing ID.
	ErrDuplicateID = errors.New("duplicate id")
)

// NotFoundError wraps a sentinel with the offending identifier.
type NotFoundError struct {
	Kind string
	ID   string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrRowNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}
