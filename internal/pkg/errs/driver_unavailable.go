package errs

import (
	"errors"
	"fmt"
)

// ErrDriverUnavailable is the sentinel error for assigning work to a driver
// who cannot take it.
var ErrDriverUnavailable = errors.New("driver is unavailable")

// DriverUnavailableError indicates that a driver was not available for a new assignment.
type DriverUnavailableError struct {
	DriverID any
	Status   string
	Cause    error
}

// NewDriverUnavailableError creates a DriverUnavailableError without a cause.
func NewDriverUnavailableError(driverID any, status string) *DriverUnavailableError {
	return &DriverUnavailableError{
		DriverID: driverID,
		Status:   status,
	}
}

// NewDriverUnavailableErrorWithCause creates a DriverUnavailableError wrapping an underlying cause.
func NewDriverUnavailableErrorWithCause(driverID any, status string, cause error) *DriverUnavailableError {
	return &DriverUnavailableError{
		DriverID: driverID,
		Status:   status,
		Cause:    cause,
	}
}

func (e *DriverUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: driver %s is %s (cause: %v)",
			ErrDriverUnavailable, e.DriverID, e.Status, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: driver %s is %s", ErrDriverUnavailable, e.DriverID, e.Status))
}

func (e *DriverUnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}
