package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DeliveryReminderJob sweeps for delivery legs without progress and alerts
// operations staff. A leg in picked_up or in_transit that has not written any
// update, location pings included, within the threshold is considered stalled.
type DeliveryReminderJob struct {
	handler    queries.GetStalledDeliveriesQueryHandler
	notifier   ports.Notifier
	stalledFor time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeliveryReminderJob creates the reminder sweep. stalledFor is the
// inactivity threshold after which a delivery leg triggers an alert.
func NewDeliveryReminderJob(
	handler queries.GetStalledDeliveriesQueryHandler,
	notifier ports.Notifier,
	stalledFor time.Duration,
	logger *slog.Logger,
) *DeliveryReminderJob {
	return &DeliveryReminderJob{
		handler:    handler,
		notifier:   notifier,
		stalledFor: stalledFor,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "delivery_reminder_job"),
	}
}

// Start begins the reminder sweep, running every 15 minutes.
func (j *DeliveryReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 */15 * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery reminder job started (running every 15 minutes)")
	return nil
}

// Stop stops the reminder sweep.
func (j *DeliveryReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery reminder job stopped")
}

func (j *DeliveryReminderJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetStalledDeliveriesQuery(j.stalledFor)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery reminder job misconfigured", "error", err)
		return
	}

	stalled, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery reminder sweep failed", "error", err)
		return
	}

	for _, leg := range stalled {
		j.notifier.Notify(ports.Notification{
			Audience: ports.AudienceOperations,
			Event:    "delivery_stalled",
			Payload: map[string]any{
				"order_number":     leg.OrderNumber,
				"assignment_type":  leg.AssignmentType,
				"status":           leg.Status,
				"driver_name":      leg.DriverName,
				"driver_phone":     leg.DriverPhone,
				"delivery_address": leg.DeliveryAddress,
				"stalled_minutes":  int(time.Since(leg.LastProgressAt).Minutes()),
			},
		})
	}

	if len(stalled) > 0 {
		j.logger.InfoContext(ctx, "Stalled delivery reminders sent", "count", len(stalled))
	}
}
