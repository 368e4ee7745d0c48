package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryReminderJob *DeliveryReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	stalledDeliveriesHandler queries.GetStalledDeliveriesQueryHandler,
	notifier ports.Notifier,
	stalledFor time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryReminderJob: NewDeliveryReminderJob(stalledDeliveriesHandler, notifier, stalledFor, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryReminderJob.Stop()
}
