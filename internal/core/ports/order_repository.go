package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Updates persist the order row together with any pending status history
// records accumulated on the aggregate, inside the ambient transaction.
type OrderRepository interface {
	// Add persists a new order aggregate to storage, including any pending
	// status history records.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Pending status
	// history records are appended in the same transaction, so a status change
	// can never be stored without its history entry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order with a row lock (SELECT ... FOR UPDATE),
	// serializing concurrent workflow operations on the same order. Must be
	// called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
