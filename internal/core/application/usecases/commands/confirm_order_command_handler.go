package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler moves a ManagerApproved order to Confirmed.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.Confirm(cmd.Actor())
		})
}
