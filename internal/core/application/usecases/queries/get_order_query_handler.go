package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its items from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError if no order with
// the given ID exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, branchID, requesterID uuid.UUID
	var managerReply, trackingID, trackingLink sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			branch_id,
			requester_id,
			status,
			substage,
			remarks,
			manager_reply,
			tracking_id,
			tracking_link,
			requested_at,
			approved_at,
			confirmed_at,
			dispatched_at,
			received_at,
			closed_at,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&branchID,
		&requesterID,
		&resp.Status,
		&resp.Substage,
		&resp.Remarks,
		&managerReply,
		&trackingID,
		&trackingLink,
		&resp.RequestedAt,
		&resp.ApprovedAt,
		&resp.ConfirmedAt,
		&resp.DispatchedAt,
		&resp.ReceivedAt,
		&resp.ClosedAt,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BranchID, err = kernel.UUIDFromBytes(branchID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RequesterID, err = kernel.UUIDFromBytes(requesterID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ManagerReply = managerReply.String
	resp.TrackingID = trackingID.String
	resp.TrackingLink = trackingLink.String

	if resp.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			qty_requested,
			qty_approved,
			unit_price,
			resolved
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var item GetOrderItemResponse
		var id uuid.UUID
		var qtyApproved sql.NullInt64

		if err = rows.Scan(&id, &item.QtyRequested, &qtyApproved, &item.UnitPrice, &item.Resolved); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if qtyApproved.Valid {
			qty := int(qtyApproved.Int64)
			item.QtyApproved = &qty
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
