package issue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message instance was not
// created through NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// maxTextLength bounds a single ledger entry.
const maxTextLength = 4000

// Message is one immutable entry of an order's negotiation ledger.
//
// Entries are append-only: they are never edited or deleted, so the ledger
// is a complete audit trail of the dispute. A message is either general
// (itemID is nil) or scoped to a single order line, in which case it may
// carry a proposed quantity for that line.
type Message struct {
	id          kernel.UUID
	orderID     kernel.UUID
	itemID      *kernel.UUID
	senderID    kernel.UUID
	senderRole  order.Role
	text        string
	proposedQty *int
	createdAt   time.Time

	isConstructed bool
}

// NewMessage creates a new ledger entry with validation.
//
// Parameters:
//   - id: Unique identifier for the message (must be valid UUID)
//   - orderID: The order whose ledger this entry belongs to
//   - itemID: Optional order line the entry is scoped to; nil means general
//   - sender: The actor writing the entry (only the requester and managers
//     take part in negotiation)
//   - text: The message body (required, at most 4000 characters)
//   - proposedQty: Optional quantity proposal; requires an item scope and
//     must not be negative
func NewMessage(
	id kernel.UUID,
	orderID kernel.UUID,
	itemID *kernel.UUID,
	sender order.Actor,
	text string,
	proposedQty *int,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := sender.Role.Validate(); err != nil {
		return nil, err
	}
	if !canNegotiate(sender.Role) {
		return nil, errs.NewValueIsInvalidErrorWithCause("senderRole",
			fmt.Errorf("%s does not take part in negotiation", sender.Role))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.NewValidationError("text")
	}
	if len(text) > maxTextLength {
		return nil, errs.NewValueIsOutOfRangeError("text", len(text), 1, maxTextLength)
	}
	if proposedQty != nil {
		if itemID == nil {
			return nil, errs.NewValidationError("itemId")
		}
		if *proposedQty < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("proposedQty",
				fmt.Errorf("%d is negative", *proposedQty))
		}
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		itemID:        itemID,
		senderID:      sender.ID,
		senderRole:    sender.Role,
		text:          text,
		proposedQty:   proposedQty,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a ledger entry from persistence.
func RestoreMessage(
	id kernel.UUID,
	orderID kernel.UUID,
	itemID *kernel.UUID,
	senderID kernel.UUID,
	senderRole order.Role,
	text string,
	proposedQty *int,
	createdAt time.Time,
) (*Message, error) {
	msg, err := NewMessage(id, orderID, itemID, order.Actor{ID: senderID, Role: senderRole}, text, proposedQty)
	if err != nil {
		return nil, err
	}
	msg.createdAt = createdAt
	return msg, nil
}

// Validate ensures the Message instance was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// OrderID returns the order this entry belongs to.
func (m *Message) OrderID() kernel.UUID {
	return m.orderID
}

// ItemID returns the order line this entry is scoped to, or nil for a
// general entry.
func (m *Message) ItemID() *kernel.UUID {
	return m.itemID
}

// SenderID returns the writing actor's identifier.
func (m *Message) SenderID() kernel.UUID {
	return m.senderID
}

// SenderRole returns the writing actor's role.
func (m *Message) SenderRole() order.Role {
	return m.senderRole
}

// Text returns the message body.
func (m *Message) Text() string {
	return m.text
}

// ProposedQty returns the quantity proposal, or nil if the entry does not
// carry one.
func (m *Message) ProposedQty() *int {
	return m.proposedQty
}

// CreatedAt returns the entry's creation time.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// IsGeneral reports whether the entry is order-level rather than scoped to
// a single line.
func (m *Message) IsGeneral() bool {
	return m.itemID == nil
}

func canNegotiate(role order.Role) bool {
	switch role {
	case order.RoleBranchUser, order.RoleManager, order.RoleAdmin:
		return true
	default:
		return false
	}
}

// Thread is an order's negotiation ledger read back from persistence,
// ordered oldest first.
type Thread []*Message

// NewThread sorts the given entries by creation time and returns them as a
// thread. The input slice is not modified.
func NewThread(messages []*Message) Thread {
	thread := make(Thread, len(messages))
	copy(thread, messages)
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].createdAt.Before(thread[j].createdAt)
	})
	return thread
}

// General returns the order-level entries of the thread.
func (t Thread) General() Thread {
	var out Thread
	for _, m := range t {
		if m.IsGeneral() {
			out = append(out, m)
		}
	}
	return out
}

// ForItem returns the entries scoped to the given order line.
func (t Thread) ForItem(itemID kernel.UUID) Thread {
	var out Thread
	for _, m := range t {
		if m.itemID != nil && m.itemID.IsEqual(itemID) {
			out = append(out, m)
		}
	}
	return out
}

// LatestProposal returns the most recent quantity proposal for the given
// order line, or nil if the line has none.
func (t Thread) LatestProposal(itemID kernel.UUID) *int {
	var latest *int
	for _, m := range t.ForItem(itemID) {
		if m.proposedQty != nil {
			latest = m.proposedQty
		}
	}
	return latest
}
