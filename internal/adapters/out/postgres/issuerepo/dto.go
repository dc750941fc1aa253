// Package issuerepo persists the negotiation ledger. Entries are
// append-only rows; the repository offers no update or delete.
package issuerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// MessageDTO represents one ledger entry row.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	ItemID      *uuid.UUID `gorm:"type:uuid;index"`
	SenderID    uuid.UUID  `gorm:"type:uuid"`
	SenderRole  string
	Text        string
	ProposedQty *int
	CreatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (MessageDTO) TableName() string {
	return "issue_messages"
}

func fromDomain(msg *issue.Message) MessageDTO {
	var itemID *uuid.UUID
	if id := msg.ItemID(); id != nil {
		raw := id.Bytes()
		itemID = &raw
	}

	return MessageDTO{
		ID:          msg.ID().Bytes(),
		OrderID:     msg.OrderID().Bytes(),
		ItemID:      itemID,
		SenderID:    msg.SenderID().Bytes(),
		SenderRole:  msg.SenderRole().String(),
		Text:        msg.Text(),
		ProposedQty: msg.ProposedQty(),
		CreatedAt:   msg.CreatedAt(),
	}
}

func toDomain(dto MessageDTO) (*issue.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	senderRole, err := order.ParseRole(dto.SenderRole)
	if err != nil {
		return nil, err
	}

	var itemID *kernel.UUID
	if dto.ItemID != nil {
		scoped, itemErr := kernel.UUIDFromBytes((*dto.ItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		itemID = &scoped
	}

	return issue.RestoreMessage(id, orderID, itemID, senderID, senderRole, dto.Text, dto.ProposedQty, dto.CreatedAt)
}
