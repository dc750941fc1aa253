package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApproveOrderCommandIsNotConstructed = errors.New(
		"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
	)
	ErrApprovalsAreRequired = errors.New("at least one quantity approval is required")
)

// ApproveOrderCommand represents a manager's approval of a requested order,
// carrying an approved quantity for every item.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     order.Actor
	approvals []order.QuantityApproval

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates a command to approve an order.
// Quantity bounds and item coverage are enforced by the aggregate.
func NewApproveOrderCommand(
	orderID kernel.UUID, actor order.Actor, approvals []order.QuantityApproval,
) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setApprovals(approvals),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the order to approve.
func (c ApproveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the approving actor.
func (c ApproveOrderCommand) Actor() order.Actor {
	return c.actor
}

// Approvals returns the per-item approved quantities.
func (c ApproveOrderCommand) Approvals() []order.QuantityApproval {
	return c.approvals
}

func (c *ApproveOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveOrderCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ApproveOrderCommand) setApprovals(approvals []order.QuantityApproval) error {
	if len(approvals) == 0 {
		return ErrApprovalsAreRequired
	}
	for _, a := range approvals {
		if err := a.ItemID.Validate(); err != nil {
			return err
		}
	}

	c.approvals = approvals
	return nil
}
