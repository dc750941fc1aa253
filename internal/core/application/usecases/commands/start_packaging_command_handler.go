package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// StartPackagingCommandHandler moves an order that was sent for packaging
// to UnderPackaging. Proof-of-stage media must exist before the move.
type StartPackagingCommandHandler struct {
	uowFactory OrderUoWFactory
	media      ports.MediaStore
	notifier   Notifier
}

// NewStartPackagingCommandHandler creates a handler for starting packaging.
func NewStartPackagingCommandHandler(
	uowFactory OrderUoWFactory, media ports.MediaStore, notifier Notifier,
) StartPackagingCommandHandler {
	return StartPackagingCommandHandler{
		uowFactory: uowFactory,
		media:      media,
		notifier:   notifier,
	}
}

// Handle processes the start-packaging command.
func (h *StartPackagingCommandHandler) Handle(ctx context.Context, cmd StartPackagingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hasMedia, err := h.media.HasAttachmentsForStage(ctx, cmd.OrderID(), order.EdgeStartPackaging)
	if err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.StartPackaging(cmd.Actor(), hasMedia)
		})
}
