package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand records the driver's live position for an order's
// delivery assignment. This is the high-frequency tracking path, so it carries
// only the coordinates.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command to record a driver position.
func NewUpdateLocationCommand(orderID kernel.UUID,
	location kernel.GeoPoint) (UpdateLocationCommand, error) {
	command := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLocation(location),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c UpdateLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Location returns the driver's reported position.
func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
