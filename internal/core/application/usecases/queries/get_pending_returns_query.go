package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPendingReturnsQueryIsNotConstructed = errors.New(
	"GetPendingReturnsQuery must be created via NewGetPendingReturnsQuery constructor",
)

// GetPendingReturnsQuery retrieves orders that failed quality inspection and
// have not started their return leg yet. Operations drains this queue by
// creating return assignments.
type GetPendingReturnsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingReturnsQuery creates a query for the pending returns queue.
func NewGetPendingReturnsQuery() GetPendingReturnsQuery {
	return GetPendingReturnsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingReturnsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingReturnsQueryIsNotConstructed)
}

// GetPendingReturnsQueryResponse is one failed order awaiting its return leg.
type GetPendingReturnsQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	GarageID        kernel.UUID
	PartDescription string
	GarageAddress   string
	FailureCategory string
	FailureReason   string
	FailedAt        *time.Time
}
