// Package ports defines repository, unit-of-work, and notification interfaces
// for the fulfillment domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate retrieves a driver with a row lock (SELECT ... FOR UPDATE).
	// Concurrent attempts to bind the same driver serialize on this lock, so
	// the loser observes the winner's Busy status instead of double-booking.
	// Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
