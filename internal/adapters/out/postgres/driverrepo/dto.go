// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence.
package driverrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string

	VehicleType  string
	VehiclePlate string
	VehicleModel string

	Status          string `gorm:"index"`
	TotalDeliveries int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Phone:           aggregate.Phone(),
		VehicleType:     aggregate.VehicleType(),
		VehiclePlate:    aggregate.VehiclePlate(),
		VehicleModel:    aggregate.VehicleModel(),
		Status:          aggregate.Status().String(),
		TotalDeliveries: aggregate.TotalDeliveries(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.Phone,
		dto.VehicleType,
		dto.VehiclePlate,
		dto.VehicleModel,
		driver.Status(dto.Status),
		dto.TotalDeliveries,
	)
}
