package errs

import (
	"errors"
	"fmt"
)

// ErrPreconditionFailed is the sentinel error for state-machine gate violations.
// It is returned when an entity is not in the status an operation requires.
var ErrPreconditionFailed = errors.New("precondition failed")

// PreconditionFailedError carries the entity, its current status, and the status
// the rejected operation required. Callers surface Current and Required so API
// clients can see why the transition was refused.
type PreconditionFailedError struct {
	ParamName string
	ID        any
	Current   string
	Required  string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(paramName string, id any, current string, required string) *PreconditionFailedError {
	return &PreconditionFailedError{
		ParamName: paramName,
		ID:        id,
		Current:   current,
		Required:  required,
	}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError wrapping an underlying cause.
func NewPreconditionFailedErrorWithCause(paramName string, id any, current string, required string,
	cause error) *PreconditionFailedError {
	return &PreconditionFailedError{
		ParamName: paramName,
		ID:        id,
		Current:   current,
		Required:  required,
		Cause:     cause,
	}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %s is %s, required status is %s (cause: %v)",
			ErrPreconditionFailed, e.ParamName, e.ID, e.Current, e.Required, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %s is %s, required status is %s",
		ErrPreconditionFailed, e.ParamName, e.ID, e.Current, e.Required))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
