package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances an order's delivery assignment through
// its lifecycle: picked up, in transit, delivered, or failed. The progress
// update carries whatever proof-of-delivery data the driver attached.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  assignment.Status
	update  assignment.ProgressUpdate
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to advance a delivery leg.
func NewUpdateDeliveryStatusCommand(orderID kernel.UUID, target assignment.Status,
	update assignment.ProgressUpdate, actor order.Actor) (UpdateDeliveryStatusCommand, error) {
	command := UpdateDeliveryStatusCommand{
		update: update,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
		command.setActor(actor),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the order whose delivery leg is advancing.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the assignment status to advance to.
func (c UpdateDeliveryStatusCommand) Target() assignment.Status {
	return c.target
}

// Update returns the optional proof-of-delivery fields.
func (c UpdateDeliveryStatusCommand) Update() assignment.ProgressUpdate {
	return c.update
}

// Actor returns who is reporting the progress.
func (c UpdateDeliveryStatusCommand) Actor() order.Actor {
	return c.actor
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target assignment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateDeliveryStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
