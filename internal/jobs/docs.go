// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. OrderCloseJob - Runs hourly to close received orders whose grace period
// has elapsed. The close is performed by the system actor, so the branch
// does not have to take any action after confirming receipt.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, closeOrderHandler, 72*time.Hour, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures on individual orders are logged and skipped; a sweep never aborts
// because one order could not be closed.
package jobs
