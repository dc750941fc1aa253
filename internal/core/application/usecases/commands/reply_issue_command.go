package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReplyIssueCommandIsNotConstructed = errors.New(
		"ReplyIssueCommand must be created via NewReplyIssueCommand constructor",
	)
	ErrReplyIsRequired = errors.New("reply is required")
)

// ReplyIssueCommand represents the manager's reply to a raised issue,
// optionally revising approved quantities of the disputed items.
type ReplyIssueCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     order.Actor
	reply     string
	revisions []order.QuantityApproval

	guard guard.ConstructorGuard
}

// NewReplyIssueCommand creates a command to reply to a raised issue.
// Revisions are optional and may cover any subset of the order's items.
func NewReplyIssueCommand(
	orderID kernel.UUID, actor order.Actor, reply string, revisions []order.QuantityApproval,
) (ReplyIssueCommand, error) {
	cmd := ReplyIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setReply(reply),
		cmd.setRevisions(revisions),
	); err != nil {
		return ReplyIssueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReplyIssueCommand) Validate() error {
	return c.guard.Validate(ErrReplyIssueCommandIsNotConstructed)
}

// OrderID returns the disputed order.
func (c ReplyIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the replying actor.
func (c ReplyIssueCommand) Actor() order.Actor {
	return c.actor
}

// Reply returns the reply text.
func (c ReplyIssueCommand) Reply() string {
	return c.reply
}

// Revisions returns the revised approved quantities, possibly empty.
func (c ReplyIssueCommand) Revisions() []order.QuantityApproval {
	return c.revisions
}

func (c *ReplyIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReplyIssueCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReplyIssueCommand) setReply(reply string) error {
	if strings.TrimSpace(reply) == "" {
		return ErrReplyIsRequired
	}

	c.reply = reply
	return nil
}

func (c *ReplyIssueCommand) setRevisions(revisions []order.QuantityApproval) error {
	for _, r := range revisions {
		if err := r.ItemID.Validate(); err != nil {
			return err
		}
	}

	c.revisions = revisions
	return nil
}
