// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the fulfillment workflows.
//
// # Available Jobs
//
// 1. DeliveryReminderJob - Runs every 15 minutes to find delivery legs stuck
// in picked_up or in_transit beyond the inactivity threshold and alert
// operations staff through the Notifier.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(stalledDeliveriesHandler, notifier, stalledFor, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; alerts themselves
// are fire-and-forget through the Notifier.
package jobs
