package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCollectionReadyOrdersQueryHandler retrieves the collection queue from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetCollectionReadyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCollectionReadyOrdersQueryHandler creates a handler for collection
// queue queries.
func NewGetCollectionReadyOrdersQueryHandler(db *gorm.DB) GetCollectionReadyOrdersQueryHandler {
	return GetCollectionReadyOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns orders in ready_for_pickup status, oldest
// first, so the longest-waiting garages are visited first.
func (h GetCollectionReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCollectionReadyOrdersQuery,
) ([]GetCollectionReadyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCollectionReadyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			garage_id,
			part_description,
			garage_address,
			delivery_address,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at
	`, order.ReadyForPickup).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCollectionReadyOrdersQueryResponse
		var id, garageID uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&garageID,
			&resp.PartDescription,
			&resp.GarageAddress,
			&resp.DeliveryAddress,
			&resp.CreatedAt,
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

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
