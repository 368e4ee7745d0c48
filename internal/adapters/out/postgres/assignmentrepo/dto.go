// Package assignmentrepo provides data transfer objects and mapping functions
// for delivery assignment persistence. The order-unique index on the
// assignments table backs the one-assignment-per-order invariant.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting delivery
// assignment aggregates.
type AssignmentDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	DriverID *uuid.UUID `gorm:"type:uuid;index"`

	AssignmentType string
	Status         string `gorm:"index"`

	PickupAddress   string
	DeliveryAddress string

	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time

	CurrentLat *float64 `gorm:"type:numeric(9,6)"`
	CurrentLng *float64 `gorm:"type:numeric(9,6)"`
	LocatedAt  *time.Time

	DriverNotes      string
	RecipientName    string
	DeliveryPhotoURL string
	SignatureURL     string
	FailureReason    string
	ReturnReason     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

// fromDomain converts an assignment domain aggregate to its database
// representation.
func fromDomain(aggregate *assignment.DeliveryAssignment) AssignmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := AssignmentDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderID:             aggregate.OrderID().Bytes(),
		DriverID:            driverID,
		AssignmentType:      aggregate.Type().String(),
		Status:              aggregate.Status().String(),
		PickupAddress:       aggregate.PickupAddress().String(),
		DeliveryAddress:     aggregate.DeliveryAddress().String(),
		EstimatedPickupAt:   aggregate.EstimatedPickupAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		PickedUpAt:          aggregate.PickedUpAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
		LocatedAt:           aggregate.LocatedAt(),
		DriverNotes:         aggregate.DriverNotes(),
		RecipientName:       aggregate.RecipientName(),
		DeliveryPhotoURL:    aggregate.DeliveryPhotoURL(),
		SignatureURL:        aggregate.SignatureURL(),
		FailureReason:       aggregate.FailureReason(),
		ReturnReason:        aggregate.ReturnReason(),
	}

	if location := aggregate.CurrentLocation(); location != nil {
		lat, lng := location.Latitude(), location.Longitude()
		dto.CurrentLat, dto.CurrentLng = &lat, &lng
	}

	return dto
}

// toDomain converts a database DTO to an assignment domain aggregate.
func toDomain(dto AssignmentDTO) (*assignment.DeliveryAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	pickupAddress, err := kernel.NewAddress(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := kernel.NewAddress(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	var currentLocation *kernel.GeoPoint
	if dto.CurrentLat != nil && dto.CurrentLng != nil {
		location, locErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLng)
		if locErr != nil {
			return nil, locErr
		}
		currentLocation = &location
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		driverID,
		assignment.Type(dto.AssignmentType),
		assignment.Status(dto.Status),
		pickupAddress,
		deliveryAddress,
		dto.EstimatedPickupAt,
		dto.EstimatedDeliveryAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		currentLocation,
		dto.LocatedAt,
		dto.DriverNotes,
		dto.RecipientName,
		dto.DeliveryPhotoURL,
		dto.SignatureURL,
		dto.FailureReason,
		dto.ReturnReason,
	)
}
