package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CompletePackagingCommandHandler moves an UnderPackaging order to
// PackagingCompleted. Proof-of-stage media must exist before the move.
type CompletePackagingCommandHandler struct {
	uowFactory OrderUoWFactory
	media      ports.MediaStore
	notifier   Notifier
}

// NewCompletePackagingCommandHandler creates a handler for completing
// packaging.
func NewCompletePackagingCommandHandler(
	uowFactory OrderUoWFactory, media ports.MediaStore, notifier Notifier,
) CompletePackagingCommandHandler {
	return CompletePackagingCommandHandler{
		uowFactory: uowFactory,
		media:      media,
		notifier:   notifier,
	}
}

// Handle processes the complete-packaging command.
func (h *CompletePackagingCommandHandler) Handle(ctx context.Context, cmd CompletePackagingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hasMedia, err := h.media.HasAttachmentsForStage(ctx, cmd.OrderID(), order.EdgeCompletePackaging)
	if err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.CompletePackaging(cmd.Actor(), hasMedia)
		})
}
