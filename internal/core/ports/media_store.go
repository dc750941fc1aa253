package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// MediaStore defines the contract for stage attachment records. Transitions
// into media-gated stages consult it before the aggregate is asked to move.
type MediaStore interface {
	// HasAttachmentsForStage reports whether at least one attachment exists
	// for the given order and lifecycle edge.
	HasAttachmentsForStage(ctx context.Context, orderID kernel.UUID, edge order.Edge) (bool, error)

	// AddAttachment records an uploaded attachment for an order and the
	// lifecycle edge it documents.
	AddAttachment(ctx context.Context, orderID kernel.UUID, edge order.Edge, fileName, contentType, url string) error
}
