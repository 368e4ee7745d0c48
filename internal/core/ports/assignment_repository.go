package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for delivery
// assignment aggregates. An order has at most one assignment: Upsert inserts
// or replaces on the order key, which enforces the invariant at the storage
// level even under concurrent writers.
type AssignmentRepository interface {
	// Upsert persists the assignment, inserting a new row or updating the
	// existing one for the same order.
	Upsert(ctx context.Context, aggregate *assignment.DeliveryAssignment) error

	// Update persists changes to an existing assignment aggregate.
	Update(ctx context.Context, aggregate *assignment.DeliveryAssignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.DeliveryAssignment, error)

	// GetByOrder retrieves the assignment covering an order, if one exists.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.DeliveryAssignment, error)
}
