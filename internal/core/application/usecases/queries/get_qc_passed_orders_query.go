package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetQCPassedOrdersQueryIsNotConstructed = errors.New(
	"GetQCPassedOrdersQuery must be created via NewGetQCPassedOrdersQuery constructor",
)

// GetQCPassedOrdersQuery retrieves inspected orders waiting for a delivery
// driver. Each row carries the inspection verdict details the dispatcher
// shares with the customer.
type GetQCPassedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetQCPassedOrdersQuery creates a query for the dispatch queue.
func NewGetQCPassedOrdersQuery() GetQCPassedOrdersQuery {
	return GetQCPassedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetQCPassedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetQCPassedOrdersQueryIsNotConstructed)
}

// GetQCPassedOrdersQueryResponse is one inspected order awaiting dispatch.
type GetQCPassedOrdersQueryResponse struct {
	ID                  kernel.UUID
	OrderNumber         string
	CustomerID          kernel.UUID
	PartDescription     string
	DeliveryAddress     string
	PartGrade           string
	ConditionAssessment string
	InspectedAt         *time.Time
}
