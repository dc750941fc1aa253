package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DispatchOrderCommandHandler moves a PackagingCompleted order to InTransit
// with its tracking details. Transit media must exist before the move.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	media      ports.MediaStore
	notifier   Notifier
}

// NewDispatchOrderCommandHandler creates a handler for dispatching orders.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory, media ports.MediaStore, notifier Notifier,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		media:      media,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hasMedia, err := h.media.HasAttachmentsForStage(ctx, cmd.OrderID(), order.EdgeDispatch)
	if err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.Dispatch(cmd.Actor(), cmd.TrackingID(), cmd.TrackingLink(), hasMedia)
		})
}
