package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// ApproveOrderCommandHandler moves a Requested order to ManagerApproved.
// The requester is notified after the transaction commits.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewApproveOrderCommandHandler creates a handler for order approval.
func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the approval command.
func (h *ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.Approve(cmd.Actor(), cmd.Approvals())
		})
}
