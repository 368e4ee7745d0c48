package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// CollectOrderCommandHandler marks an order as collected from its garage,
// optionally binding the collecting driver and opening a standard delivery
// assignment for them.
//
// The whole operation runs in one transaction: order status, history record,
// driver availability, and the assignment either all commit or none do.
// Notifications go out only after the commit.
type CollectOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewCollectOrderCommandHandler creates a handler for order collection.
func NewCollectOrderCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier) CollectOrderCommandHandler {
	return CollectOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the collection command.
// The order must be in ready_for_pickup status; a driver bound at collection
// must be available and becomes busy.
func (h CollectOrderCommandHandler) Handle(ctx context.Context, command CollectOrderCommand) error {
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
	driverRepo := uow.DriverRepository()
	assignmentRepo := uow.AssignmentRepository()

	collectedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	reason := command.Notes()
	if reason == "" {
		reason = "Part collected from garage"
	}

	var driverName string
	if command.DriverID() != nil {
		collectingDriver, err := driverRepo.GetForUpdate(ctx, *command.DriverID())
		if err != nil {
			return err
		}
		if err := collectingDriver.MarkBusy(); err != nil {
			return err
		}
		if err := collectedOrder.BindDriver(collectingDriver.ID()); err != nil {
			return err
		}
		if command.Notes() == "" {
			reason = fmt.Sprintf("Part collected from garage by %s", collectingDriver.Name())
		}
		driverName = collectingDriver.Name()

		if err := driverRepo.Update(ctx, collectingDriver); err != nil {
			return err
		}
	}

	if err := collectedOrder.Collect(command.Actor(), reason); err != nil {
		return err
	}

	if command.DriverID() != nil {
		driverID := *command.DriverID()
		pickupAssignment, err := assignment.NewAssignment(
			kernel.NewUUID(),
			collectedOrder.ID(),
			&driverID,
			assignment.TypeStandard,
			collectedOrder.GarageAddress(),
			collectedOrder.DeliveryAddress(),
			nil, nil, "",
		)
		if err != nil {
			return err
		}
		if err := assignmentRepo.Upsert(ctx, pickupAssignment); err != nil {
			return err
		}
	}

	if err := orderRepo.Update(ctx, collectedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id":     collectedOrder.ID().String(),
		"order_number": collectedOrder.OrderNumber(),
		"status":       collectedOrder.Status().String(),
	}
	if driverName != "" {
		payload["driver_name"] = driverName
	}
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceGarage,
		RecipientID: collectedOrder.GarageID().String(),
		Event:       "order_collected",
		Payload:     payload,
	})
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceCustomer,
		RecipientID: collectedOrder.CustomerID().String(),
		Event:       "order_collected",
		Payload:     payload,
	})

	return nil
}
