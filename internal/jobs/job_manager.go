package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderCloseJob *OrderCloseJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	closeOrderHandler commands.CloseOrderCommandHandler,
	closeGracePeriod time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderCloseJob: NewOrderCloseJob(uowFactory, closeOrderHandler, closeGracePeriod, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderCloseJob.Start(); err != nil {
		return fmt.Errorf("failed to start order close job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderCloseJob.Stop()
}
