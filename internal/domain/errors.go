package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers branch on these with errors.Is; the concrete types
// carry detail.

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("shift is not in the expected state")
	ErrPersistence  = errors.New("persistence failure")
	ErrNotFound     = errors.New("not found")
)

// ValidationError is a user-correctable input problem. No write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateError means the shift changed status since the caller last
// read it. The caller must refetch before retrying.
type InvalidStateError struct {
	ShiftID  string
	Status   ShiftStatus
	Expected ShiftStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("shift %s is %s, expected %s", e.ShiftID, e.Status, e.Expected)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// PartialCompletionError reports that a shift was completed but its
// successor could not be created. The ended shift stays completed.
type PartialCompletionError struct {
	EndedShiftID string
	Err          error
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf("shift %s ended but successor was not started: %v", e.EndedShiftID, e.Err)
}

func (e *PartialCompletionError) Unwrap() error { return e.Err }

// AggregationWarning is a non-fatal indent lookup failure. It is returned as
// a value alongside a zero total, never as an error.
type AggregationWarning struct {
	StaffID string
	Err     error
}

func (w *AggregationWarning) Error() string {
	return fmt.Sprintf("indent sales for staff %s unavailable: %v", w.StaffID, w.Err)
}

func (w *AggregationWarning) Unwrap() error { return w.Err }
