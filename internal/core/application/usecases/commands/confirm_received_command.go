package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmReceivedCommandIsNotConstructed = errors.New(
	"ConfirmReceivedCommand must be created via NewConfirmReceivedCommand constructor",
)

// ConfirmReceivedCommand represents the requester confirming physical
// receipt of a dispatched order.
type ConfirmReceivedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewConfirmReceivedCommand creates a command to confirm receipt.
func NewConfirmReceivedCommand(orderID kernel.UUID, actor order.Actor) (ConfirmReceivedCommand, error) {
	cmd := ConfirmReceivedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return ConfirmReceivedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceivedCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceivedCommandIsNotConstructed)
}

// OrderID returns the received order.
func (c ConfirmReceivedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the confirming actor.
func (c ConfirmReceivedCommand) Actor() order.Actor {
	return c.actor
}

func (c *ConfirmReceivedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmReceivedCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
