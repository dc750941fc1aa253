package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, n *notification.Notification) error

	// Update persists changes to an existing record (read and delivery
	// flags).
	Update(ctx context.Context, n *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllForUser retrieves a user's notifications, newest first.
	GetAllForUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error)
}
