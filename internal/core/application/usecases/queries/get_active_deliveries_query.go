package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves every delivery leg currently on the road:
// assigned, picked up, or in transit, for both standard and return
// assignments. This feeds the operations live board.
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for the live delivery board.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse is one delivery leg in flight. Driver
// fields are empty when the leg has no driver bound yet; location fields are
// nil until the first position report arrives.
type GetActiveDeliveriesQueryResponse struct {
	AssignmentID        kernel.UUID
	OrderID             kernel.UUID
	OrderNumber         string
	AssignmentType      string
	Status              string
	DriverName          string
	DriverPhone         string
	PickupAddress       string
	DeliveryAddress     string
	EstimatedDeliveryAt *time.Time
	CurrentLocation     *kernel.GeoPoint
	LocatedAt           *time.Time
}
