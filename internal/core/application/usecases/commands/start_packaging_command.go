package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPackagingCommandIsNotConstructed = errors.New(
	"StartPackagingCommand must be created via NewStartPackagingCommand constructor",
)

// StartPackagingCommand represents the packaging team taking over an order
// that was sent for packaging.
type StartPackagingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewStartPackagingCommand creates a command to start packaging.
func NewStartPackagingCommand(orderID kernel.UUID, actor order.Actor) (StartPackagingCommand, error) {
	cmd := StartPackagingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return StartPackagingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPackagingCommand) Validate() error {
	return c.guard.Validate(ErrStartPackagingCommandIsNotConstructed)
}

// OrderID returns the order to package.
func (c StartPackagingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting packager.
func (c StartPackagingCommand) Actor() order.Actor {
	return c.actor
}

func (c *StartPackagingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartPackagingCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
