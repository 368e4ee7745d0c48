package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartInspectionCommandIsNotConstructed = errors.New(
	"StartInspectionCommand must be created via NewStartInspectionCommand constructor",
)

// StartInspectionCommand opens a quality inspection for a collected order.
// Starting is idempotent: if an inspection already exists for the order it is
// returned as-is instead of being reset.
type StartInspectionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	inspectorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartInspectionCommand creates a command to open an inspection.
func NewStartInspectionCommand(orderID kernel.UUID,
	inspectorID kernel.UUID) (StartInspectionCommand, error) {
	command := StartInspectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setInspectorID(inspectorID),
	); err != nil {
		return StartInspectionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartInspectionCommand) Validate() error {
	return c.guard.Validate(ErrStartInspectionCommandIsNotConstructed)
}

// OrderID returns the order to inspect.
func (c StartInspectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InspectorID returns the inspector opening the inspection.
func (c StartInspectionCommand) InspectorID() kernel.UUID {
	return c.inspectorID
}

func (c *StartInspectionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartInspectionCommand) setInspectorID(inspectorID kernel.UUID) error {
	if err := inspectorID.Validate(); err != nil {
		return err
	}

	c.inspectorID = inspectorID
	return nil
}
