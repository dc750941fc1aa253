package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CloseOrderCommandHandler moves a Received order to Closed, the terminal
// status.
type CloseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewCloseOrderCommandHandler creates a handler for closing orders.
func NewCloseOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the close command.
func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.Close(cmd.Actor())
		})
}
