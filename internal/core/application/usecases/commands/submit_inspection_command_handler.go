package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SubmitInspectionCommandHandler records the inspection verdict and moves the
// order through the quality gate. A verdict can be submitted directly without
// an explicit start: the handler opens the inspection record on the fly.
type SubmitInspectionCommandHandler struct {
	uowFactory InspectionUoWFactory
	notifier   ports.Notifier
}

// NewSubmitInspectionCommandHandler creates a handler for verdict submission.
func NewSubmitInspectionCommandHandler(uowFactory InspectionUoWFactory,
	notifier ports.Notifier) SubmitInspectionCommandHandler {
	return SubmitInspectionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the verdict. The order moves to qc_passed or qc_failed,
// with a matching status history record, in the same transaction as the
// inspection update. On failure, operations staff get an alert so the return
// flow can be started.
func (h SubmitInspectionCommandHandler) Handle(ctx context.Context, command SubmitInspectionCommand) error {
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
	inspectionRepo := uow.InspectionRepository()

	inspectedOrder, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	record, err := inspectionRepo.GetByOrder(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		record, err = inspection.NewInspection(kernel.NewUUID(), command.OrderID(),
			command.InspectorID(), now)
	}
	if err != nil {
		return err
	}

	inspector, err := order.NewActor(command.InspectorID().String(), order.ActorOperations)
	if err != nil {
		return err
	}

	if command.Passed() {
		if err := record.SubmitPassed(command.InspectorID(), command.Report(), now); err != nil {
			return err
		}
		if err := inspectedOrder.PassInspection(inspector, "QC Inspection Passed"); err != nil {
			return err
		}
	} else {
		if err := record.SubmitFailed(command.InspectorID(), command.Report(), now); err != nil {
			return err
		}
		reason := fmt.Sprintf("QC Failed: %s", command.Report().FailureReason)
		if err := inspectedOrder.FailInspection(inspector, reason); err != nil {
			return err
		}
	}

	if err := inspectionRepo.Upsert(ctx, record); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, inspectedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(inspectedOrder, record)

	return nil
}

// notify fans the verdict out to the interested parties after commit.
func (h SubmitInspectionCommandHandler) notify(inspectedOrder *order.Order,
	record *inspection.QualityInspection) {
	event := "qc_passed"
	payload := map[string]any{
		"order_id":     inspectedOrder.ID().String(),
		"order_number": inspectedOrder.OrderNumber(),
		"status":       inspectedOrder.Status().String(),
		"part_grade":   record.PartGrade().String(),
	}
	if record.Status() == inspection.Failed {
		event = "qc_failed"
		payload["failure_reason"] = record.FailureReason()
		payload["failure_category"] = record.FailureCategory()
	}

	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceCustomer,
		RecipientID: inspectedOrder.CustomerID().String(),
		Event:       event,
		Payload:     payload,
	})
	h.notifier.Notify(ports.Notification{
		Audience:    ports.AudienceGarage,
		RecipientID: inspectedOrder.GarageID().String(),
		Event:       event,
		Payload:     payload,
	})

	if record.Status() == inspection.Failed {
		h.notifier.Notify(ports.Notification{
			Audience: ports.AudienceOperations,
			Event:    "qc_failed_alert",
			Payload:  payload,
		})
	}
}
