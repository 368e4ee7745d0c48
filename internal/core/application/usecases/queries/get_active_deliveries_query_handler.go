package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves the live delivery board from the
// database: every assignment still moving, joined with its order and driver.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for live board queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Returns active assignments ordered by creation,
// so long-running legs surface at the top of the board.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			o.order_number,
			a.assignment_type,
			a.status,
			d.name,
			d.phone,
			a.pickup_address,
			a.delivery_address,
			a.estimated_delivery_at,
			a.current_lat,
			a.current_lng,
			a.located_at
		FROM delivery_assignments a
		JOIN orders o ON o.id = a.order_id
		LEFT JOIN drivers d ON d.id = a.driver_id
		WHERE a.status IN ('assigned', 'picked_up', 'in_transit')
		ORDER BY a.created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var driverName, driverPhone sql.NullString
		var currentLat, currentLng sql.NullFloat64

		err = rows.Scan(
			&id,
			&orderID,
			&resp.OrderNumber,
			&resp.AssignmentType,
			&resp.Status,
			&driverName,
			&driverPhone,
			&resp.PickupAddress,
			&resp.DeliveryAddress,
			&resp.EstimatedDeliveryAt,
			&currentLat,
			&currentLng,
			&resp.LocatedAt,
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

		if currentLat.Valid && currentLng.Valid {
			location, locErr := kernel.NewGeoPoint(currentLat.Float64, currentLng.Float64)
			if locErr != nil {
				return nil, locErr
			}
			resp.CurrentLocation = &location
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
