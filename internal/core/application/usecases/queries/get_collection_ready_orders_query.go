// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCollectionReadyOrdersQueryIsNotConstructed = errors.New(
	"GetCollectionReadyOrdersQuery must be created via NewGetCollectionReadyOrdersQuery constructor",
)

// GetCollectionReadyOrdersQuery retrieves orders waiting to be picked up from
// their garages. This is the work queue the operations team drains every
// morning.
type GetCollectionReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCollectionReadyOrdersQuery creates a query for the collection queue.
func NewGetCollectionReadyOrdersQuery() GetCollectionReadyOrdersQuery {
	return GetCollectionReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCollectionReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCollectionReadyOrdersQueryIsNotConstructed)
}

// GetCollectionReadyOrdersQueryResponse is one order awaiting collection.
type GetCollectionReadyOrdersQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	GarageID        kernel.UUID
	PartDescription string
	GarageAddress   string
	DeliveryAddress string
	CreatedAt       time.Time
}
