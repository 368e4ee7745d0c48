package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitInspectionCommandIsNotConstructed = errors.New(
	"SubmitInspectionCommand must be created via NewSubmitInspectionCommand constructor",
)

// SubmitInspectionCommand records the inspector's verdict for an order.
// The report fields are merged into the inspection record by the aggregate;
// the verdict side of the report (failure reason and category) is validated
// there too, so a failed verdict without an actionable reason never reaches
// storage.
type SubmitInspectionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	inspectorID kernel.UUID
	passed      bool
	report      inspection.Report

	guard guard.ConstructorGuard
}

// NewSubmitInspectionCommand creates a command to submit an inspection verdict.
func NewSubmitInspectionCommand(orderID kernel.UUID, inspectorID kernel.UUID,
	passed bool, report inspection.Report) (SubmitInspectionCommand, error) {
	command := SubmitInspectionCommand{
		passed: passed,
		report: report,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setInspectorID(inspectorID),
	); err != nil {
		return SubmitInspectionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitInspectionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitInspectionCommandIsNotConstructed)
}

// OrderID returns the inspected order.
func (c SubmitInspectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InspectorID returns the inspector submitting the verdict.
func (c SubmitInspectionCommand) InspectorID() kernel.UUID {
	return c.inspectorID
}

// Passed reports whether the part passed inspection.
func (c SubmitInspectionCommand) Passed() bool {
	return c.passed
}

// Report returns the inspection findings.
func (c SubmitInspectionCommand) Report() inspection.Report {
	return c.report
}

func (c *SubmitInspectionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitInspectionCommand) setInspectorID(inspectorID kernel.UUID) error {
	if err := inspectorID.Validate(); err != nil {
		return err
	}

	c.inspectorID = inspectorID
	return nil
}
