package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SetArrangingStageCommandHandler moves a Confirmed order into Arranging or
// advances its substage. For substages that require proof-of-stage media,
// the media store is consulted before the aggregate is asked to move.
type SetArrangingStageCommandHandler struct {
	uowFactory OrderUoWFactory
	media      ports.MediaStore
	notifier   Notifier
}

// NewSetArrangingStageCommandHandler creates a handler for arranging-stage
// changes.
func NewSetArrangingStageCommandHandler(
	uowFactory OrderUoWFactory, media ports.MediaStore, notifier Notifier,
) SetArrangingStageCommandHandler {
	return SetArrangingStageCommandHandler{
		uowFactory: uowFactory,
		media:      media,
		notifier:   notifier,
	}
}

// Handle processes the arranging-stage command.
func (h *SetArrangingStageCommandHandler) Handle(ctx context.Context, cmd SetArrangingStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	edge, _ := order.ArrangingEdge(cmd.Target())
	hasMedia, err := h.media.HasAttachmentsForStage(ctx, cmd.OrderID(), edge)
	if err != nil {
		return err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, cmd.OrderID(),
		func(o *order.Order) (order.TransitionOutcome, error) {
			return o.SetArrangingStage(cmd.Actor(), cmd.Target(), hasMedia)
		})
}
