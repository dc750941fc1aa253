package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrPostIssueMessageCommandIsNotConstructed = errors.New(
	"PostIssueMessageCommand must be created via NewPostIssueMessageCommand constructor",
)

// PostIssueMessageCommand represents a free ledger entry outside the
// raise/reply edges: a clarifying question, an update, or an item-scoped
// remark with an optional quantity proposal. Posting does not change the
// order's status.
type PostIssueMessageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       order.Actor
	text        string
	itemID      *kernel.UUID
	proposedQty *int

	guard guard.ConstructorGuard
}

// NewPostIssueMessageCommand creates a command to append a ledger entry.
func NewPostIssueMessageCommand(
	orderID kernel.UUID, actor order.Actor, text string, itemID *kernel.UUID, proposedQty *int,
) (PostIssueMessageCommand, error) {
	cmd := PostIssueMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setText(text),
		cmd.setScope(itemID, proposedQty),
	); err != nil {
		return PostIssueMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostIssueMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostIssueMessageCommandIsNotConstructed)
}

// OrderID returns the order whose ledger receives the entry.
func (c PostIssueMessageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the writing actor.
func (c PostIssueMessageCommand) Actor() order.Actor {
	return c.actor
}

// Text returns the entry body.
func (c PostIssueMessageCommand) Text() string {
	return c.text
}

// ItemID returns the scoped item, or nil for a general entry.
func (c PostIssueMessageCommand) ItemID() *kernel.UUID {
	return c.itemID
}

// ProposedQty returns the quantity proposal, or nil if none was made.
func (c PostIssueMessageCommand) ProposedQty() *int {
	return c.proposedQty
}

func (c *PostIssueMessageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PostIssueMessageCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *PostIssueMessageCommand) setText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrMessageIsRequired
	}

	c.text = text
	return nil
}

func (c *PostIssueMessageCommand) setScope(itemID *kernel.UUID, proposedQty *int) error {
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return err
		}
	}

	c.itemID = itemID
	c.proposedQty = proposedQty
	return nil
}
