package driver

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents a driver's availability for new assignments.
//
// State transitions:
//
//	Available <──> Busy
//
// A driver becomes Busy when bound to an active delivery or return assignment
// and Available again when the assignment reaches a terminal outcome.
type Status string

const (
	// Available means the driver can take a new assignment.
	Available Status = "available"

	// Busy means the driver is working an active assignment and must not be
	// given another one.
	Busy Status = "busy"
)

// Validate checks if the Status value is one of the defined driver statuses.
func (s Status) Validate() error {
	switch s {
	case Available, Busy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid driver status", string(s)))
	}
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}
