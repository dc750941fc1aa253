package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for opening an order.
// The order starts in Requested status; managers are notified after the
// transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, err := order.NewItem(input.ID, input.QtyRequested, input.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, outcome, err := order.NewOrder(
		cmd.OrderID(), order.NewNumber(cmd.OrderID()), cmd.BranchID(), cmd.Requester(), items, cmd.Remarks())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, aggregate.BranchID(), aggregate.RequesterID(), outcome)
	return nil
}
