package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification as read. A user
// may only mark their own notifications.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for read marks.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the read-mark command.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	record, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !record.UserID().IsEqual(cmd.UserID()) {
		return errs.NewObjectNotFoundError("notificationID", cmd.NotificationID())
	}

	record.MarkRead()
	if err = repo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
