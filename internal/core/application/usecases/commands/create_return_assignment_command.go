package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateReturnAssignmentCommandIsNotConstructed = errors.New(
	"CreateReturnAssignmentCommand must be created via NewCreateReturnAssignmentCommand constructor",
)

// CreateReturnAssignmentCommand sends a part that failed quality inspection
// back to its garage. A driver may be bound immediately or later, once
// operations finds one for the leg.
type CreateReturnAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID *kernel.UUID
	actor    order.Actor

	guard guard.ConstructorGuard
}

// NewCreateReturnAssignmentCommand creates a command to start the return flow.
// driverID may be nil for a driverless return assignment.
func NewCreateReturnAssignmentCommand(orderID kernel.UUID, driverID *kernel.UUID,
	actor order.Actor) (CreateReturnAssignmentCommand, error) {
	command := CreateReturnAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDriverID(driverID),
		command.setActor(actor),
	); err != nil {
		return CreateReturnAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnAssignmentCommandIsNotConstructed)
}

// OrderID returns the order to send back.
func (c CreateReturnAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the optional driver for the return leg.
func (c CreateReturnAssignmentCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Actor returns who is starting the return.
func (c CreateReturnAssignmentCommand) Actor() order.Actor {
	return c.actor
}

func (c *CreateReturnAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateReturnAssignmentCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	id := *driverID
	c.driverID = &id
	return nil
}

func (c *CreateReturnAssignmentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
