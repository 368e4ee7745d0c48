package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// InspectionCenterAddress is the pickup point for return legs: a failed part
// sits at the center after inspection and travels back to the garage from there.
const InspectionCenterAddress = "QScrap Inspection Center"

// CreateReturnAssignmentCommandHandler starts the return flow for a part that
// failed quality inspection: the order moves to returning_to_garage and a
// return assignment is opened from the inspection center back to the garage,
// carrying the failure verdict as the return reason.
type CreateReturnAssignmentCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
}

// NewCreateReturnAssignmentCommandHandler creates a handler for the return flow.
func NewCreateReturnAssignmentCommandHandler(uowFactory ReturnUoWFactory,
	notifier ports.Notifier) CreateReturnAssignmentCommandHandler {
	return CreateReturnAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the return command.
// The order must be in qc_failed status. A bound driver must be available and
// becomes busy for the return leg.
func (h CreateReturnAssignmentCommandHandler) Handle(ctx context.Context,
	command CreateReturnAssignmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	returnedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	returnReason, err := h.returnReason(ctx, uow, command.OrderID())
	if err != nil {
		return err
	}

	if err := returnedOrder.StartReturn(command.Actor(), returnReason); err != nil {
		return err
	}

	if command.DriverID() != nil {
		driverRepo := uow.DriverRepository()
		returnDriver, err := driverRepo.GetForUpdate(ctx, *command.DriverID())
		if err != nil {
			return err
		}
		if err := returnDriver.MarkBusy(); err != nil {
			return err
		}
		if err := driverRepo.Update(ctx, returnDriver); err != nil {
			return err
		}
	}

	pickupAddress, err := kernel.NewAddress(InspectionCenterAddress)
	if err != nil {
		return err
	}
	returnLeg, err := assignment.NewAssignment(
		kernel.NewUUID(),
		returnedOrder.ID(),
		command.DriverID(),
		assignment.TypeReturnToGarage,
		pickupAddress,
		returnedOrder.GarageAddress(),
		nil, nil,
		returnReason,
	)
	if err != nil {
		return err
	}

	if err := uow.AssignmentRepository().Upsert(ctx, returnLeg); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, returnedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceGarage,
		RecipientID: returnedOrder.GarageID().String(),
		Event:       "return_initiated",
		Payload: map[string]any{
			"order_id":      returnedOrder.ID().String(),
			"order_number":  returnedOrder.OrderNumber(),
			"return_reason": returnReason,
		},
	})

	return nil
}

// returnReason derives the return reason from the failed inspection verdict.
// An order can only reach qc_failed through a recorded verdict, but a missing
// inspection row still degrades to a generic reason rather than blocking the
// return.
func (h CreateReturnAssignmentCommandHandler) returnReason(ctx context.Context,
	uow ReturnUoW, orderID kernel.UUID) (string, error) {
	record, err := uow.InspectionRepository().GetByOrder(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "QC Failed", nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("QC Failed: %s - %s", record.FailureCategory(), record.FailureReason()), nil
}
