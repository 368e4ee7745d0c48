package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand dispatches an inspected order: a driver is bound for the
// customer delivery leg and the order goes in transit. The estimated times are
// optional planning data surfaced to the customer.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	driverID            kernel.UUID
	actor               order.Actor
	estimatedPickupAt   *time.Time
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to dispatch an order with a driver.
func NewAssignDriverCommand(orderID kernel.UUID, driverID kernel.UUID, actor order.Actor,
	estimatedPickupAt *time.Time, estimatedDeliveryAt *time.Time) (AssignDriverCommand, error) {
	command := AssignDriverCommand{
		estimatedPickupAt:   cloneOptionalTime(estimatedPickupAt),
		estimatedDeliveryAt: cloneOptionalTime(estimatedDeliveryAt),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDriverID(driverID),
		command.setActor(actor),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the driver taking the delivery leg.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Actor returns who is dispatching the order.
func (c AssignDriverCommand) Actor() order.Actor {
	return c.actor
}

// EstimatedPickupAt returns the planned pickup time, if any.
func (c AssignDriverCommand) EstimatedPickupAt() *time.Time {
	return cloneOptionalTime(c.estimatedPickupAt)
}

// EstimatedDeliveryAt returns the planned delivery time, if any.
func (c AssignDriverCommand) EstimatedDeliveryAt() *time.Time {
	return cloneOptionalTime(c.estimatedDeliveryAt)
}

func (c *AssignDriverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *AssignDriverCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

// cloneOptionalTime copies an optional timestamp so command instances stay
// immutable after construction.
func cloneOptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
