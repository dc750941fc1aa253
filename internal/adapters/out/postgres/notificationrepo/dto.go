// Package notificationrepo persists per-recipient notification records.
package notificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// NotificationDTO represents one notification row.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind        string
	Title       string
	Message     string
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	IsRead      bool
	IsEmail     bool
	IsMessaging bool
	CreatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		Kind:        string(n.Kind()),
		Title:       n.Title(),
		Message:     n.Message(),
		UserID:      n.UserID().Bytes(),
		OrderID:     n.OrderID().Bytes(),
		IsRead:      n.IsRead(),
		IsEmail:     n.IsEmail(),
		IsMessaging: n.IsMessaging(),
		CreatedAt:   n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, order.Edge(dto.Kind), dto.Title, dto.Message, userID, orderID,
		dto.IsRead, dto.IsEmail, dto.IsMessaging, dto.CreatedAt)
}
