package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OrderCloseJob closes received orders whose grace period has elapsed.
// Runs every hour: orders the branch confirmed but never closed are closed
// by the system actor once they have sat in Received longer than the grace
// period.
type OrderCloseJob struct {
	uowFactory  ports.UnitOfWorkFactory
	handler     commands.CloseOrderCommandHandler
	gracePeriod time.Duration
	systemActor order.Actor
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOrderCloseJob creates a new job for auto-closing received orders.
func NewOrderCloseJob(
	uowFactory ports.UnitOfWorkFactory,
	handler commands.CloseOrderCommandHandler,
	gracePeriod time.Duration,
	logger *slog.Logger,
) *OrderCloseJob {
	return &OrderCloseJob{
		uowFactory:  uowFactory,
		handler:     handler,
		gracePeriod: gracePeriod,
		systemActor: order.Actor{ID: kernel.NewUUID(), Role: order.RoleSystem},
		cron:        cron.New(),
		logger:      logger.With("component", "order_close_job"),
	}
}

// Start begins the order close job to run at the top of every hour.
func (j *OrderCloseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		j.Run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order close job started (running hourly)",
		"grace_period", j.gracePeriod.String())
	return nil
}

// Run executes one sweep: every order received before the cut-off is closed
// by the system actor. Failures on individual orders are logged and do not
// stop the sweep.
func (j *OrderCloseJob) Run(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.gracePeriod)

	uow := j.uowFactory.Create()
	overdue, err := uow.OrderRepository().GetAllReceivedBefore(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list overdue received orders", "error", err)
		return
	}

	for _, candidate := range overdue {
		cmd, err := commands.NewCloseOrderCommand(candidate.ID(), j.systemActor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build close command",
				"order_id", candidate.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Failed to close received order",
				"order_id", candidate.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Closed received order past grace period",
			"order_id", candidate.ID().String(), "number", candidate.Number())
	}
}

// Stop stops the order close job.
func (j *OrderCloseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order close job stopped")
}
