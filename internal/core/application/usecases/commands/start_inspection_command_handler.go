package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// StartInspectionCommandHandler opens the quality inspection for a collected
// order. The handler is idempotent: opening an inspection that already exists
// returns the existing record untouched, so a double-tap in the inspector app
// never resets findings.
type StartInspectionCommandHandler struct {
	uowFactory InspectionUoWFactory
}

// NewStartInspectionCommandHandler creates a handler for opening inspections.
func NewStartInspectionCommandHandler(uowFactory InspectionUoWFactory) StartInspectionCommandHandler {
	return StartInspectionCommandHandler{uowFactory: uowFactory}
}

// Handle opens the inspection and returns it.
// The order must be in collected status: a part cannot be inspected before it
// reaches the inspection center.
func (h StartInspectionCommandHandler) Handle(ctx context.Context,
	command StartInspectionCommand) (*inspection.QualityInspection, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inspectedOrder, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if inspectedOrder.Status() != order.Collected {
		return nil, errs.NewPreconditionFailedError("order", inspectedOrder.ID().String(),
			inspectedOrder.Status().String(), order.Collected.String())
	}

	inspectionRepo := uow.InspectionRepository()

	existing, err := inspectionRepo.GetByOrder(ctx, command.OrderID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	opened, err := inspection.NewInspection(kernel.NewUUID(), command.OrderID(),
		command.InspectorID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := inspectionRepo.Upsert(ctx, opened); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return opened, nil
}
