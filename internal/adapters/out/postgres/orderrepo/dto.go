// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and driver assignment.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber string     `gorm:"uniqueIndex"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index"`
	GarageID    uuid.UUID  `gorm:"type:uuid;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`

	PartDescription string
	GarageAddress   string
	DeliveryAddress string
	GarageLat       *float64 `gorm:"type:numeric(9,6)"`
	GarageLng       *float64 `gorm:"type:numeric(9,6)"`
	DeliveryLat     *float64 `gorm:"type:numeric(9,6)"`
	DeliveryLng     *float64 `gorm:"type:numeric(9,6)"`

	PartPrice   float64 `gorm:"type:numeric(12,2)"`
	DeliveryFee float64 `gorm:"type:numeric(12,2)"`
	TotalAmount float64 `gorm:"type:numeric(12,2)"`

	Status string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO represents one row of the append-only order status history.
// History rows are written together with the order inside the same
// transaction and are never updated or deleted.
type StatusChangeDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	FromStatus string
	ToStatus   string
	ActorID    string
	ActorKind  string
	Reason     string

	OccurredAt time.Time
}

// TableName specifies the database table name for status history rows.
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		GarageID:        aggregate.GarageID().Bytes(),
		DriverID:        driverID,
		PartDescription: aggregate.PartDescription(),
		GarageAddress:   aggregate.GarageAddress().String(),
		DeliveryAddress: aggregate.DeliveryAddress().String(),
		PartPrice:       aggregate.PartPrice(),
		DeliveryFee:     aggregate.DeliveryFee(),
		TotalAmount:     aggregate.TotalAmount(),
		Status:          aggregate.Status().String(),
	}

	if location := aggregate.GarageLocation(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.GarageLat, dto.GarageLng = &lat, &lng
	}
	if location := aggregate.DeliveryLocation(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.DeliveryLat, dto.DeliveryLng = &lat, &lng
	}

	return dto
}

// historyFromDomain converts the aggregate's pending status changes to
// history rows.
func historyFromDomain(aggregate *order.Order) []StatusChangeDTO {
	changes := aggregate.PendingStatusChanges()
	rows := make([]StatusChangeDTO, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, StatusChangeDTO{
			ID:         change.ID().Bytes(),
			OrderID:    change.OrderID().Bytes(),
			FromStatus: change.FromStatus().String(),
			ToStatus:   change.ToStatus().String(),
			ActorID:    change.Actor().ID(),
			ActorKind:  string(change.Actor().Kind()),
			Reason:     change.Reason(),
			OccurredAt: change.OccurredAt(),
		})
	}
	return rows
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	garageID, err := kernel.UUIDFromBytes(dto.GarageID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	garageAddress, err := kernel.NewAddress(dto.GarageAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	garageLocation, err := toGeoPoint(dto.GarageLat, dto.GarageLng)
	if err != nil {
		return nil, err
	}
	deliveryLocation, err := toGeoPoint(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		garageID,
		driverID,
		dto.PartDescription,
		garageAddress,
		deliveryAddress,
		garageLocation,
		deliveryLocation,
		dto.PartPrice,
		dto.DeliveryFee,
		order.Status(dto.Status),
	)
}

func toGeoPoint(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
