package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ConfirmReceivedCommandHandler moves an InTransit order to Received.
// Receipt media must exist before the move.
type ConfirmReceivedCommandHandler struct {
	uowFactory OrderUoWFactory
	media      ports.MediaStore
	notifier   Notifier
}

// NewConfirmReceivedCommandHandler creates a handler for receipt
// confirmation.
func NewConfirmReceivedCommandHandler(
	uowFactory OrderUoWFactory, media ports.MediaStore, notifier Notifier,
) ConfirmReceivedCommandHandler {
	return ConfirmReceivedCommandHandler{
		uowFactory: uowFactory,
		media:      media,
		notifier:   notifier,
	}
}

// Handle processes the receipt confirmation command.
func (h *ConfirmReceivedCommandHandler) Handle(ctx context.Context, cmd ConfirmReceivedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hasMedia, err := h.media.HasAttachmentsForStage(ctx, cmd.OrderID(), order.EdgeConfirmReceived)
	if err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.ConfirmReceived(cmd.Actor(), hasMedia)
		})
}
