package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a single allowed path through fulfillment
// and a return branch for failed quality inspections.
//
// State transitions:
//
//	ReadyForPickup ──> Collected ──┬──> QCPassed ──> InTransit ──> Delivered ──> Completed
//	                               │
//	                               └──> QCFailed ──> ReturningToGarage
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status string

const (
	// ReadyForPickup is the initial status: the garage confirmed the part and
	// the order is waiting to be collected.
	ReadyForPickup Status = "ready_for_pickup"

	// Collected indicates the part has been picked up from the garage and is
	// at the inspection center awaiting quality control.
	Collected Status = "collected"

	// QCPassed indicates the part passed quality inspection and may be
	// dispatched to the customer.
	QCPassed Status = "qc_passed"

	// QCFailed indicates the part failed quality inspection and must be
	// returned to the garage.
	QCFailed Status = "qc_failed"

	// InTransit indicates a driver is delivering the part to the customer.
	InTransit Status = "in_transit"

	// Delivered indicates the part reached the customer.
	Delivered Status = "delivered"

	// Completed indicates the order is finished. This is a final state.
	Completed Status = "completed"

	// ReturningToGarage indicates a failed part is on its way back to the
	// garage. The return leg ends the order's journey through this core.
	ReturningToGarage Status = "returning_to_garage"
)

// getTransitions returns the allowed status transition table.
// A status maps to the set of statuses it may move to next.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		ReadyForPickup:    {Collected},
		Collected:         {QCPassed, QCFailed},
		QCPassed:          {InTransit},
		QCFailed:          {ReturningToGarage},
		InTransit:         {Delivered},
		Delivered:         {Completed},
		Completed:         {},
		ReturningToGarage: {},
	}
}

// Validate checks if the Status value is one of the defined order statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the transition table allows moving from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// TransitionTo validates and performs a status transition.
//
// Returns:
//   - (target, nil) if the transition table allows the move
//   - ("", error) if the transition is not allowed from the current status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("cannot transition from %s to %s", s, target),
		)
	}

	return target, nil
}
