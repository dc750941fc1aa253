package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetIssueThreadQueryHandler reads an order's negotiation ledger from the
// database.
type GetIssueThreadQueryHandler struct {
	db *gorm.DB
}

// NewGetIssueThreadQueryHandler creates a handler for ledger queries.
func NewGetIssueThreadQueryHandler(db *gorm.DB) GetIssueThreadQueryHandler {
	return GetIssueThreadQueryHandler{db: db}
}

// Handle executes the query. An order without entries yields an empty
// thread, not an error.
func (h GetIssueThreadQueryHandler) Handle(
	ctx context.Context,
	query GetIssueThreadQuery,
) ([]GetIssueThreadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_id,
			sender_id,
			sender_role,
			text,
			proposed_qty,
			created_at
		FROM issue_messages
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetIssueThreadQueryResponse, 0)
	for rows.Next() {
		var entry GetIssueThreadQueryResponse
		var id, senderID uuid.UUID
		var itemID uuid.NullUUID
		var proposedQty sql.NullInt64

		err = rows.Scan(&id, &itemID, &senderID, &entry.SenderRole, &entry.Text, &proposedQty, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
			return nil, err
		}
		if itemID.Valid {
			scoped, idErr := kernel.UUIDFromBytes(itemID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			entry.ItemID = &scoped
		}
		if proposedQty.Valid {
			qty := int(proposedQty.Int64)
			entry.ProposedQty = &qty
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
