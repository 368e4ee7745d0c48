package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler advances a delivery assignment and keeps
// the order and driver in step with it.
//
// Side effects by target status:
//   - delivered on a standard leg marks the order delivered and releases the
//     driver with a counted delivery
//   - delivered on a return leg releases the driver and notifies the garage;
//     the order stays in returning_to_garage
//   - failed releases the driver without counting and alerts operations
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery progress.
func NewUpdateDeliveryStatusCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the progress report.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context,
	command UpdateDeliveryStatusCommand) error {
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
	assignmentRepo := uow.AssignmentRepository()

	progressedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}
	deliveryLeg, err := assignmentRepo.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err := deliveryLeg.Progress(command.Target(), command.Update(), time.Now().UTC()); err != nil {
		return err
	}

	orderChanged := false
	if command.Target() == assignment.Delivered && deliveryLeg.Type() == assignment.TypeStandard {
		if err := progressedOrder.MarkDelivered(command.Actor(), "Delivered to customer"); err != nil {
			return err
		}
		orderChanged = true
	}

	if deliveryLeg.Status().IsTerminalOutcome() && deliveryLeg.Driver() != nil {
		if err := h.releaseDriver(ctx, uow, deliveryLeg); err != nil {
			return err
		}
	}

	if err := assignmentRepo.Update(ctx, deliveryLeg); err != nil {
		return err
	}
	if orderChanged {
		if err := orderRepo.Update(ctx, progressedOrder); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(progressedOrder, deliveryLeg)

	return nil
}

// releaseDriver frees the assignment's driver once the leg reached a terminal
// outcome. A delivered leg counts towards the driver's lifetime deliveries, a
// failed one does not.
func (h UpdateDeliveryStatusCommandHandler) releaseDriver(ctx context.Context,
	uow FulfillmentUoW, deliveryLeg *assignment.DeliveryAssignment) error {
	driverRepo := uow.DriverRepository()
	legDriver, err := driverRepo.GetForUpdate(ctx, *deliveryLeg.Driver())
	if err != nil {
		return err
	}

	legDriver.Release(deliveryLeg.Status() == assignment.Delivered)

	return driverRepo.Update(ctx, legDriver)
}

// notify routes the progress event to whoever is waiting on this leg.
func (h UpdateDeliveryStatusCommandHandler) notify(progressedOrder *order.Order,
	deliveryLeg *assignment.DeliveryAssignment) {
	payload := map[string]any{
		"order_id":          progressedOrder.ID().String(),
		"order_number":      progressedOrder.OrderNumber(),
		"assignment_status": deliveryLeg.Status().String(),
	}

	switch deliveryLeg.Status() {
	case assignment.Delivered:
		if deliveryLeg.Type() == assignment.TypeReturnToGarage {
			h.notifier.Notify(ports.Notification{
				Audience:    ports.AudienceGarage,
				RecipientID: progressedOrder.GarageID().String(),
				Event:       "return_completed",
				Payload:     payload,
			})
			return
		}
		if recipient := deliveryLeg.RecipientName(); recipient != "" {
			payload["recipient_name"] = recipient
		}
		h.notifier.Notify(ports.Notification{
			Audience:    ports.AudienceCustomer,
			RecipientID: progressedOrder.CustomerID().String(),
			Event:       "order_delivered",
			Payload:     payload,
		})
	case assignment.Failed:
		if reason := deliveryLeg.FailureReason(); reason != "" {
			payload["failure_reason"] = reason
		}
		h.notifier.Notify(ports.Notification{
			Audience: ports.AudienceOperations,
			Event:    "delivery_failed_alert",
			Payload:  payload,
		})
	case assignment.PickedUp, assignment.InTransit:
		h.notifier.Notify(ports.Notification{
			Audience:    ports.AudienceCustomer,
			RecipientID: progressedOrder.CustomerID().String(),
			Event:       "delivery_progress",
			Payload:     payload,
		})
	case assignment.Assigned:
	}
}
