package notification

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Notification is a per-recipient record produced by the fan-out router for
// one lifecycle transition. The in-app record is the source of truth; the
// email and messaging flags only report whether the external channels
// accepted a copy, and a false flag never invalidates the record.
type Notification struct {
	id          kernel.UUID
	kind        order.Edge
	title       string
	message     string
	userID      kernel.UUID
	orderID     kernel.UUID
	isRead      bool
	isEmail     bool
	isMessaging bool
	createdAt   time.Time

	isConstructed bool
}

// NewNotification creates an unread notification with validation.
func NewNotification(
	id kernel.UUID,
	kind order.Edge,
	title string,
	message string,
	userID kernel.UUID,
	orderID kernel.UUID,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(kind)) == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:            id,
		kind:          kind,
		title:         title,
		message:       message,
		userID:        userID,
		orderID:       orderID,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	kind order.Edge,
	title string,
	message string,
	userID kernel.UUID,
	orderID kernel.UUID,
	isRead bool,
	isEmail bool,
	isMessaging bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, kind, title, message, userID, orderID)
	if err != nil {
		return nil, err
	}
	n.isRead = isRead
	n.isEmail = isEmail
	n.isMessaging = isMessaging
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// Kind returns the lifecycle edge that produced this notification.
func (n *Notification) Kind() order.Edge {
	return n.kind
}

// Title returns the rendered subject line.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the rendered body.
func (n *Notification) Message() string {
	return n.message
}

// UserID returns the recipient.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// IsRead reports whether the recipient has opened the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// IsEmail reports whether the email channel accepted a copy.
func (n *Notification) IsEmail() bool {
	return n.isEmail
}

// IsMessaging reports whether the messaging channel accepted a copy.
func (n *Notification) IsMessaging() bool {
	return n.isMessaging
}

// CreatedAt returns the notification's creation time.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead records that the recipient opened the notification.
// Marking an already read notification is a no-op.
func (n *Notification) MarkRead() {
	n.isRead = true
}

// MarkEmailed records that the email channel accepted a copy.
func (n *Notification) MarkEmailed() {
	n.isEmail = true
}

// MarkMessaged records that the messaging channel accepted a copy.
func (n *Notification) MarkMessaged() {
	n.isMessaging = true
}
