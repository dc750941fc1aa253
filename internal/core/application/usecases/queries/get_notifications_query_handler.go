package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler reads a user's notifications from the
// database.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification list
// queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query, newest notifications first.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT
			id,
			kind,
			title,
			message,
			order_id,
			is_read,
			is_email,
			is_messaging,
			created_at
		FROM notifications
		WHERE user_id = ?
	`
	if query.UnreadOnly() {
		stmt += " AND NOT is_read"
	}
	stmt += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(stmt, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]GetNotificationsQueryResponse, 0)
	for rows.Next() {
		var resp GetNotificationsQueryResponse
		var id, orderID uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Kind,
			&resp.Title,
			&resp.Message,
			&orderID,
			&resp.IsRead,
			&resp.IsEmail,
			&resp.IsMessaging,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
