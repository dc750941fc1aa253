// Package ports defines the contracts between the core and the adapters.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check. If the stored version no longer matches the
	// aggregate's loaded version, Update returns a ConcurrencyConflictError
	// and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// all of its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReceivedBefore retrieves all orders in Received status whose
	// receipt is older than the given cut-off. Used by the auto-close job.
	GetAllReceivedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
