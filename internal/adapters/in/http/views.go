package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// OrderItemView is one order line in the order response.
type OrderItemView struct {
	ID           string `json:"id"`
	QtyRequested int    `json:"qty_requested"`
	QtyApproved  *int   `json:"qty_approved,omitempty"`
	UnitPrice    int64  `json:"unit_price"`
	Resolved     bool   `json:"resolved"`
}

// OrderView is the full order representation returned by GET /orders/:orderId.
type OrderView struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	BranchID     string          `json:"branch_id"`
	RequesterID  string          `json:"requester_id"`
	Status       string          `json:"status"`
	Substage     string          `json:"substage,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
	ManagerReply string          `json:"manager_reply,omitempty"`
	TrackingID   string          `json:"tracking_id,omitempty"`
	TrackingLink string          `json:"tracking_link,omitempty"`
	RequestedAt  time.Time       `json:"requested_at"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	DispatchedAt *time.Time      `json:"dispatched_at,omitempty"`
	ReceivedAt   *time.Time      `json:"received_at,omitempty"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	Version      int             `json:"version"`
	Items        []OrderItemView `json:"items"`
}

func toOrderView(response queries.GetOrderQueryResponse) OrderView {
	items := make([]OrderItemView, len(response.Items))
	for i, item := range response.Items {
		items[i] = OrderItemView{
			ID:           item.ID.String(),
			QtyRequested: item.QtyRequested,
			QtyApproved:  item.QtyApproved,
			UnitPrice:    item.UnitPrice,
			Resolved:     item.Resolved,
		}
	}

	return OrderView{
		ID:           response.ID.String(),
		Number:       response.Number,
		BranchID:     response.BranchID.String(),
		RequesterID:  response.RequesterID.String(),
		Status:       response.Status,
		Substage:     response.Substage,
		Remarks:      response.Remarks,
		ManagerReply: response.ManagerReply,
		TrackingID:   response.TrackingID,
		TrackingLink: response.TrackingLink,
		RequestedAt:  response.RequestedAt,
		ApprovedAt:   response.ApprovedAt,
		ConfirmedAt:  response.ConfirmedAt,
		DispatchedAt: response.DispatchedAt,
		ReceivedAt:   response.ReceivedAt,
		ClosedAt:     response.ClosedAt,
		Version:      response.Version,
		Items:        items,
	}
}

// IssueMessageView is one ledger entry in the issue thread response.
type IssueMessageView struct {
	ID          string    `json:"id"`
	ItemID      *string   `json:"item_id,omitempty"`
	SenderID    string    `json:"sender_id"`
	SenderRole  string    `json:"sender_role"`
	Text        string    `json:"text"`
	ProposedQty *int      `json:"proposed_qty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toIssueMessageView(entry queries.GetIssueThreadQueryResponse) IssueMessageView {
	var itemID *string
	if entry.ItemID != nil {
		s := entry.ItemID.String()
		itemID = &s
	}

	return IssueMessageView{
		ID:          entry.ID.String(),
		ItemID:      itemID,
		SenderID:    entry.SenderID.String(),
		SenderRole:  entry.SenderRole,
		Text:        entry.Text,
		ProposedQty: entry.ProposedQty,
		CreatedAt:   entry.CreatedAt,
	}
}

// NotificationView is one in-app notification in the list response.
type NotificationView struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	OrderID     string    `json:"order_id"`
	IsRead      bool      `json:"is_read"`
	IsEmail     bool      `json:"is_email"`
	IsMessaging bool      `json:"is_messaging"`
	CreatedAt   time.Time `json:"created_at"`
}

func toNotificationView(entry queries.GetNotificationsQueryResponse) NotificationView {
	return NotificationView{
		ID:          entry.ID.String(),
		Kind:        entry.Kind,
		Title:       entry.Title,
		Message:     entry.Message,
		OrderID:     entry.OrderID.String(),
		IsRead:      entry.IsRead,
		IsEmail:     entry.IsEmail,
		IsMessaging: entry.IsMessaging,
		CreatedAt:   entry.CreatedAt,
	}
}
