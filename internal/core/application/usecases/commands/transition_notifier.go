package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Notifier fans a committed transition out to its recipients. Handlers call
// it after their own transaction has committed; it must never fail the
// command that triggered it.
type Notifier interface {
	Notify(ctx context.Context, branchID, requesterID kernel.UUID, outcome order.TransitionOutcome)
}

// TransitionNotifier is the production Notifier. For each committed
// transition it asks the NotificationRouter for the rendered notices,
// resolves role audiences through the user directory, attempts delivery
// over the email and messaging channels, and stores one notification record
// per recipient in its own transaction.
//
// Channel failures are recorded in the notification flags and logged; they
// never surface to the caller. Only the in-app record is mandatory.
type TransitionNotifier struct {
	router     services.NotificationRouter
	directory  ports.UserDirectory
	channels   ports.ChannelClient
	uowFactory NotificationUoWFactory
	logger     *slog.Logger
}

// NewTransitionNotifier creates a TransitionNotifier.
func NewTransitionNotifier(
	router services.NotificationRouter,
	directory ports.UserDirectory,
	channels ports.ChannelClient,
	uowFactory NotificationUoWFactory,
	logger *slog.Logger,
) *TransitionNotifier {
	return &TransitionNotifier{
		router:     router,
		directory:  directory,
		channels:   channels,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Notify routes, delivers, and stores the notifications of one transition.
func (n *TransitionNotifier) Notify(ctx context.Context, branchID, requesterID kernel.UUID, outcome order.TransitionOutcome) {
	notices, err := n.router.Route(outcome)
	if err != nil {
		n.logger.Error("notification fan-out failed",
			"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", err)
		return
	}

	uow := n.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		n.logger.Error("notification fan-out failed",
			"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	for _, notice := range notices {
		recipients, resolveErr := n.resolve(ctx, notice.Recipient, branchID, requesterID)
		if resolveErr != nil {
			n.logger.Error("notification audience resolution failed",
				"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", resolveErr)
			continue
		}

		for _, userID := range recipients {
			record, buildErr := notification.NewNotification(
				kernel.NewUUID(), outcome.Edge, notice.Title, notice.Message, userID, outcome.OrderID)
			if buildErr != nil {
				n.logger.Error("notification build failed",
					"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", buildErr)
				continue
			}

			n.deliver(ctx, record)

			if addErr := repo.Add(ctx, record); addErr != nil {
				n.logger.Error("notification store failed",
					"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", addErr)
				return
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		n.logger.Error("notification fan-out failed",
			"edge", string(outcome.Edge), "order", outcome.OrderID.String(), "error", err)
	}
}

// deliver attempts the external channels and records the outcome in the
// notification's flags.
func (n *TransitionNotifier) deliver(ctx context.Context, record *notification.Notification) {
	email := n.channels.SendEmail(ctx, record.UserID(), record.Title(), record.Message())
	if email.Accepted {
		record.MarkEmailed()
	} else {
		n.logger.Warn("email delivery not accepted",
			"user", record.UserID().String(),
			"error", errs.NewChannelFailureError("email", errors.New(email.Detail)))
	}

	msg := n.channels.SendMessage(ctx, record.UserID(), record.Title()+"\n"+record.Message())
	if msg.Accepted {
		record.MarkMessaged()
	} else {
		n.logger.Warn("messaging delivery not accepted",
			"user", record.UserID().String(),
			"error", errs.NewChannelFailureError("messaging", errors.New(msg.Detail)))
	}
}

func (n *TransitionNotifier) resolve(
	ctx context.Context, recipient services.Recipient, branchID, requesterID kernel.UUID,
) ([]kernel.UUID, error) {
	if recipient.Audience == services.AudienceRequester {
		return []kernel.UUID{requesterID}, nil
	}
	return n.directory.UserIDsByRole(ctx, recipient.Role, branchID)
}
