package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChange is an append-only history record of a single order status
// transition. Records are accumulated on the Order aggregate as transitions
// happen and persisted together with the order in the same transaction.
type StatusChange struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus Status
	toStatus   Status
	actor      Actor
	reason     string
	occurredAt time.Time
}

// newStatusChange records a transition. Only the Order aggregate creates
// status changes, which keeps history writes inside the order's consistency
// boundary.
func newStatusChange(orderID kernel.UUID, from Status, to Status, actor Actor, reason string) StatusChange {
	return StatusChange{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		fromStatus: from,
		toStatus:   to,
		actor:      actor,
		reason:     reason,
		occurredAt: time.Now().UTC(),
	}
}

// ID returns the history record's unique identifier.
func (c StatusChange) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order the record belongs to.
func (c StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// FromStatus returns the status the order left.
func (c StatusChange) FromStatus() Status {
	return c.fromStatus
}

// ToStatus returns the status the order entered.
func (c StatusChange) ToStatus() Status {
	return c.toStatus
}

// Actor returns who performed the change.
func (c StatusChange) Actor() Actor {
	return c.actor
}

// Reason returns the human-readable reason for the change.
func (c StatusChange) Reason() string {
	return c.reason
}

// OccurredAt returns when the change happened.
func (c StatusChange) OccurredAt() time.Time {
	return c.occurredAt
}
