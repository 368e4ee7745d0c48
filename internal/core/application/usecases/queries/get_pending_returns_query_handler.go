package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingReturnsQueryHandler retrieves failed orders whose return leg has
// not been created yet, with the verdict that condemned them.
type GetPendingReturnsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingReturnsQueryHandler creates a handler for pending return queries.
func NewGetPendingReturnsQueryHandler(db *gorm.DB) GetPendingReturnsQueryHandler {
	return GetPendingReturnsQueryHandler{db: db}
}

// Handle executes the query. Returns qc_failed orders oldest verdict first.
func (h GetPendingReturnsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingReturnsQuery,
) ([]GetPendingReturnsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	returns := make([]GetPendingReturnsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.garage_id,
			o.part_description,
			o.garage_address,
			qi.failure_category,
			qi.failure_reason,
			qi.completed_at
		FROM orders o
		JOIN quality_inspections qi ON qi.order_id = o.id
		WHERE o.status = ?
		ORDER BY qi.completed_at
	`, order.QCFailed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingReturnsQueryResponse
		var id, garageID uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&garageID,
			&resp.PartDescription,
			&resp.GarageAddress,
			&resp.FailureCategory,
			&resp.FailureReason,
			&resp.FailedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		garageUUID, idErr := kernel.UUIDFromBytes(garageID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.GarageID = garageUUID

		returns = append(returns, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return returns, nil
}
