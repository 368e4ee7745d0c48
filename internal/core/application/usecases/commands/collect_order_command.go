package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCollectOrderCommandIsNotConstructed = errors.New(
	"CollectOrderCommand must be created via NewCollectOrderCommand constructor",
)

// CollectOrderCommand represents the pickup of a confirmed part from the
// selling garage. A driver may optionally be bound at collection time; the
// order can also be collected driverless and get its delivery driver later,
// after quality inspection.
//
// Example:
//
//	cmd, err := NewCollectOrderCommand(orderID, &driverID, actor, "collected at rear gate")
//	if err != nil {
//	    return fmt.Errorf("invalid collection request: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CollectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID *kernel.UUID
	actor    order.Actor
	notes    string

	guard guard.ConstructorGuard
}

// NewCollectOrderCommand creates a command to collect an order from its
// garage. driverID may be nil for driverless collection; notes are optional
// and end up in the status history reason.
func NewCollectOrderCommand(orderID kernel.UUID, driverID *kernel.UUID,
	actor order.Actor, notes string) (CollectOrderCommand, error) {
	command := CollectOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDriverID(driverID),
		command.setActor(actor),
	); err != nil {
		return CollectOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectOrderCommand) Validate() error {
	return c.guard.Validate(ErrCollectOrderCommandIsNotConstructed)
}

// OrderID returns the order to collect.
func (c CollectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the optional driver performing the pickup.
func (c CollectOrderCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Actor returns who is recording the collection.
func (c CollectOrderCommand) Actor() order.Actor {
	return c.actor
}

// Notes returns the optional collection notes.
func (c CollectOrderCommand) Notes() string {
	return c.notes
}

func (c *CollectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CollectOrderCommand) setDriverID(driverID *kernel.UUID) error {
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

func (c *CollectOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
