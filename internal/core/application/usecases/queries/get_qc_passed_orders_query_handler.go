package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetQCPassedOrdersQueryHandler retrieves the dispatch queue: orders that
// passed quality inspection and have no delivery driver yet. The inspection
// verdict is joined in so dispatchers see the assessed grade without a second
// lookup.
type GetQCPassedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetQCPassedOrdersQueryHandler creates a handler for dispatch queue queries.
func NewGetQCPassedOrdersQueryHandler(db *gorm.DB) GetQCPassedOrdersQueryHandler {
	return GetQCPassedOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns qc_passed orders oldest first.
func (h GetQCPassedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetQCPassedOrdersQuery,
) ([]GetQCPassedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetQCPassedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			o.part_description,
			o.delivery_address,
			qi.part_grade,
			qi.condition_assessment,
			qi.completed_at
		FROM orders o
		JOIN quality_inspections qi ON qi.order_id = o.id
		WHERE o.status = ?
		ORDER BY qi.completed_at
	`, order.QCPassed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetQCPassedOrdersQueryResponse
		var id, customerID uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&customerID,
			&resp.PartDescription,
			&resp.DeliveryAddress,
			&resp.PartGrade,
			&resp.ConditionAssessment,
			&resp.InspectedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		customerUUID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CustomerID = customerUUID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
