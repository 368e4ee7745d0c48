package assignment

import (
	"fmt"
	"sort"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery assignment.
//
// State transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Delivered
//	    ^            │            │              (final)
//	    │            v            v
//	    └──────── Failed <────────┘
//
// A failed assignment can be reassigned, which starts the leg over from
// Assigned. Delivered is the only final state.
type Status string

const (
	// Assigned means a driver (or, for driverless returns, nobody yet) has
	// been given the leg but has not picked the part up.
	Assigned Status = "assigned"

	// PickedUp means the driver collected the part at the pickup address.
	PickedUp Status = "picked_up"

	// InTransit means the driver is moving toward the delivery address.
	InTransit Status = "in_transit"

	// Delivered means the part reached the delivery address. Final state.
	Delivered Status = "delivered"

	// Failed means the leg did not complete. The assignment can be handed to
	// another driver, restarting from Assigned.
	Failed Status = "failed"
)

// getTransitions returns the allowed status transition table.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Assigned:  {PickedUp, Failed},
		PickedUp:  {InTransit, Failed},
		InTransit: {Delivered, Failed},
		Delivered: {},
		Failed:    {Assigned},
	}
}

// Validate checks if the Status value is one of the defined assignment statuses.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid assignment status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface.
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

// IsActive reports whether the assignment still represents work in progress.
func (s Status) IsActive() bool {
	switch s {
	case Assigned, PickedUp, InTransit:
		return true
	default:
		return false
	}
}

// IsTerminalOutcome reports whether the status ends the driver's involvement
// with the leg, releasing the driver for new work.
func (s Status) IsTerminalOutcome() bool {
	return s == Delivered || s == Failed
}

// sourcesOf returns the statuses that may transition into target, sorted for
// stable error messages.
func sourcesOf(target Status) string {
	var sources []string
	for from, allowed := range getTransitions() {
		for _, to := range allowed {
			if to == target {
				sources = append(sources, string(from))
			}
		}
	}
	sort.Strings(sources)
	return strings.Join(sources, "|")
}
