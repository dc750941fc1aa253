package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePackagingCommandIsNotConstructed = errors.New(
	"CompletePackagingCommand must be created via NewCompletePackagingCommand constructor",
)

// CompletePackagingCommand represents the packaging team finishing an order.
type CompletePackagingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewCompletePackagingCommand creates a command to complete packaging.
func NewCompletePackagingCommand(orderID kernel.UUID, actor order.Actor) (CompletePackagingCommand, error) {
	cmd := CompletePackagingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return CompletePackagingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePackagingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackagingCommandIsNotConstructed)
}

// OrderID returns the packaged order.
func (c CompletePackagingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting packager.
func (c CompletePackagingCommand) Actor() order.Actor {
	return c.actor
}

func (c *CompletePackagingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompletePackagingCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
