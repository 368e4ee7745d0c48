package queries

import (
	"errors"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStalledDeliveriesQueryIsNotConstructed = errors.New(
	"GetStalledDeliveriesQuery must be created via NewGetStalledDeliveriesQuery constructor",
)

// GetStalledDeliveriesQuery retrieves delivery legs that have sat in
// picked_up or in_transit without any progress for longer than the threshold.
// This feeds the reminder sweep that alerts operations staff.
type GetStalledDeliveriesQuery struct {
	stalledFor time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalledDeliveriesQuery creates a query for deliveries without
// progress for at least stalledFor.
func NewGetStalledDeliveriesQuery(stalledFor time.Duration) (GetStalledDeliveriesQuery, error) {
	if stalledFor <= 0 {
		return GetStalledDeliveriesQuery{}, errs.NewValueIsOutOfRangeError(
			"stalledFor", stalledFor, time.Nanosecond, time.Duration(math.MaxInt64))
	}

	return GetStalledDeliveriesQuery{
		stalledFor: stalledFor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// StalledFor returns the inactivity threshold.
func (q GetStalledDeliveriesQuery) StalledFor() time.Duration {
	return q.stalledFor
}

// Validate ensures the query was created through the constructor.
func (q GetStalledDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledDeliveriesQueryIsNotConstructed)
}

// GetStalledDeliveriesQueryResponse is one delivery leg without recent
// progress. Driver fields are empty for driverless return legs.
type GetStalledDeliveriesQueryResponse struct {
	AssignmentID    kernel.UUID
	OrderID         kernel.UUID
	OrderNumber     string
	AssignmentType  string
	Status          string
	DriverName      string
	DriverPhone     string
	DeliveryAddress string
	LastProgressAt  time.Time
}
