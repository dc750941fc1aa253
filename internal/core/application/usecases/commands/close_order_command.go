package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCloseOrderCommandIsNotConstructed = errors.New(
	"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
)

// CloseOrderCommand represents closing a received order, either by a
// manager or by the auto-close job acting as the system.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewCloseOrderCommand creates a command to close an order.
func NewCloseOrderCommand(orderID kernel.UUID, actor order.Actor) (CloseOrderCommand, error) {
	cmd := CloseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return CloseOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

// OrderID returns the order to close.
func (c CloseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the closing actor.
func (c CloseOrderCommand) Actor() order.Actor {
	return c.actor
}

func (c *CloseOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CloseOrderCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
