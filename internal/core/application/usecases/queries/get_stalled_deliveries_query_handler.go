package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalledDeliveriesQueryHandler retrieves delivery legs stuck in
// picked_up or in_transit beyond the query's inactivity threshold.
type GetStalledDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetStalledDeliveriesQueryHandler creates a handler for stalled delivery queries.
func NewGetStalledDeliveriesQueryHandler(db *gorm.DB) GetStalledDeliveriesQueryHandler {
	return GetStalledDeliveriesQueryHandler{db: db}
}

// Handle executes the query. A leg counts as stalled when its last write,
// including location pings, is older than the threshold. Ordered oldest
// progress first so the most overdue legs come up front.
func (h GetStalledDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetStalledDeliveriesQuery,
) ([]GetStalledDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.StalledFor())

	deliveries := make([]GetStalledDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			o.order_number,
			a.assignment_type,
			a.status,
			d.name,
			d.phone,
			a.delivery_address,
			a.updated_at
		FROM delivery_assignments a
		JOIN orders o ON o.id = a.order_id
		LEFT JOIN drivers d ON d.id = a.driver_id
		WHERE a.status IN ('picked_up', 'in_transit')
		  AND a.updated_at < ?
		ORDER BY a.updated_at
	`, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStalledDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var driverName, driverPhone sql.NullString

		err = rows.Scan(
			&id,
			&orderID,
			&resp.OrderNumber,
			&resp.AssignmentType,
			&resp.Status,
			&driverName,
			&driverPhone,
			&resp.DeliveryAddress,
			&resp.LastProgressAt,
		)
		if err != nil {
			return nil, err
		}

		assignmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.AssignmentID = assignmentID

		orderUUID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderUUID

		resp.DriverName = driverName.String
		resp.DriverPhone = driverPhone.String

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
