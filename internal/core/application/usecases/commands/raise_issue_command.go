package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRaiseIssueCommandIsNotConstructed = errors.New(
		"RaiseIssueCommand must be created via NewRaiseIssueCommand constructor",
	)
	ErrMessageIsRequired = errors.New("message is required")
)

// RaiseIssueCommand represents the requester's dispute of the approved
// quantities. The message becomes the first new entry of the negotiation
// ledger; it may be scoped to a single item with a counter-proposal.
type RaiseIssueCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       order.Actor
	message     string
	itemID      *kernel.UUID
	proposedQty *int

	guard guard.ConstructorGuard
}

// NewRaiseIssueCommand creates a command to raise an issue on an approved
// order.
func NewRaiseIssueCommand(
	orderID kernel.UUID, actor order.Actor, message string, itemID *kernel.UUID, proposedQty *int,
) (RaiseIssueCommand, error) {
	cmd := RaiseIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setMessage(message),
		cmd.setScope(itemID, proposedQty),
	); err != nil {
		return RaiseIssueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseIssueCommand) Validate() error {
	return c.guard.Validate(ErrRaiseIssueCommandIsNotConstructed)
}

// OrderID returns the disputed order.
func (c RaiseIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the disputing actor.
func (c RaiseIssueCommand) Actor() order.Actor {
	return c.actor
}

// Message returns the dispute message.
func (c RaiseIssueCommand) Message() string {
	return c.message
}

// ItemID returns the disputed item, or nil for an order-level dispute.
func (c RaiseIssueCommand) ItemID() *kernel.UUID {
	return c.itemID
}

// ProposedQty returns the counter-proposal, or nil if none was made.
func (c RaiseIssueCommand) ProposedQty() *int {
	return c.proposedQty
}

func (c *RaiseIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RaiseIssueCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RaiseIssueCommand) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageIsRequired
	}

	c.message = message
	return nil
}

func (c *RaiseIssueCommand) setScope(itemID *kernel.UUID, proposedQty *int) error {
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return err
		}
	}

	c.itemID = itemID
	c.proposedQty = proposedQty
	return nil
}
