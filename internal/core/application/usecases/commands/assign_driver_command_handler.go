package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// AssignDriverCommandHandler dispatches a QC-passed order to a driver for the
// customer delivery leg. The quality gate is enforced by the order aggregate:
// an order that has not passed inspection cannot be dispatched, whatever the
// driver situation is.
type AssignDriverCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewAssignDriverCommandHandler creates a handler for order dispatch.
func NewAssignDriverCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command.
//
// The order must be in qc_passed status and the driver must be available. The
// quality gate is checked before driver availability so a rejected dispatch
// reports the more fundamental problem first.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
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

	dispatchedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}
	deliveryDriver, err := driverRepo.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("Dispatched for delivery with driver %s", deliveryDriver.Name())
	if err := dispatchedOrder.Dispatch(deliveryDriver.ID(), command.Actor(), reason); err != nil {
		return err
	}
	if err := deliveryDriver.MarkBusy(); err != nil {
		return err
	}

	// The standard leg is booked garage to customer, matching how the order
	// itself is addressed.
	pickupAddress := dispatchedOrder.GarageAddress()
	driverID := deliveryDriver.ID()
	deliveryLeg, err := assignment.NewAssignment(
		kernel.NewUUID(),
		dispatchedOrder.ID(),
		&driverID,
		assignment.TypeStandard,
		pickupAddress,
		dispatchedOrder.DeliveryAddress(),
		command.EstimatedPickupAt(),
		command.EstimatedDeliveryAt(),
		"",
	)
	if err != nil {
		return err
	}

	if err := uow.AssignmentRepository().Upsert(ctx, deliveryLeg); err != nil {
		return err
	}
	if err := driverRepo.Update(ctx, deliveryDriver); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, dispatchedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"order_id":             dispatchedOrder.ID().String(),
		"order_number":         dispatchedOrder.OrderNumber(),
		"status":               dispatchedOrder.Status().String(),
		"driver_name":          deliveryDriver.Name(),
		"driver_phone":         deliveryDriver.Phone(),
		"driver_vehicle_type":  deliveryDriver.VehicleType(),
		"driver_vehicle_plate": deliveryDriver.VehiclePlate(),
	}
	if eta := command.EstimatedDeliveryAt(); eta != nil {
		payload["estimated_delivery_at"] = eta.UTC()
	}
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceCustomer,
		RecipientID: dispatchedOrder.CustomerID().String(),
		Event:       "order_dispatched",
		Payload:     payload,
	})
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceGarage,
		RecipientID: dispatchedOrder.GarageID().String(),
		Event:       "delivery_started",
		Payload: map[string]any{
			"order_id":     dispatchedOrder.ID().String(),
			"order_number": dispatchedOrder.OrderNumber(),
			"driver_name":  deliveryDriver.Name(),
		},
	})
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceDriver,
		RecipientID: deliveryDriver.ID().String(),
		Event:       "delivery_assigned",
		Payload: map[string]any{
			"order_id":         dispatchedOrder.ID().String(),
			"order_number":     dispatchedOrder.OrderNumber(),
			"pickup_address":   pickupAddress.String(),
			"delivery_address": dispatchedOrder.DeliveryAddress().String(),
		},
	})

	return nil
}
