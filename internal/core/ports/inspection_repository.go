package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
)

// InspectionRepository defines the persistence contract for quality
// inspection aggregates. An order has at most one inspection; verdict
// re-submissions update the existing row.
type InspectionRepository interface {
	// Upsert persists the inspection, inserting a new row or updating the
	// existing one for the same order.
	Upsert(ctx context.Context, aggregate *inspection.QualityInspection) error

	// GetByOrder retrieves the inspection for an order, if one exists.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*inspection.QualityInspection, error)
}
