package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// UpdateLocationCommandHandler records a driver's live position on the order's
// delivery assignment and relays it to the waiting customer. Location reports
// carry no status preconditions: a late ping after delivery is harmless.
type UpdateLocationCommandHandler struct {
	uowFactory TrackingUoWFactory
	notifier   ports.Notifier
}

// NewUpdateLocationCommandHandler creates a handler for position reports.
func NewUpdateLocationCommandHandler(uowFactory TrackingUoWFactory,
	notifier ports.Notifier) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle records the position report.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, command UpdateLocationCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()

	trackedOrder, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	deliveryLeg, err := assignmentRepo.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err := deliveryLeg.UpdateLocation(command.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err := assignmentRepo.Update(ctx, deliveryLeg); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceCustomer,
		RecipientID: trackedOrder.CustomerID().String(),
		Event:       "driver_location_updated",
		Payload: map[string]any{
			"order_id":  trackedOrder.ID().String(),
			"latitude":  command.Location().Latitude(),
			"longitude": command.Location().Longitude(),
		},
	})

	return nil
}
