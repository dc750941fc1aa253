package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents handing a packaged order to the carrier.
// The tracking fields may arrive empty; the aggregate reports exactly which
// ones are missing.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        order.Actor
	trackingID   string
	trackingLink string

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch an order.
func NewDispatchOrderCommand(
	orderID kernel.UUID, actor order.Actor, trackingID, trackingLink string,
) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return DispatchOrderCommand{}, err
	}
	cmd.trackingID = trackingID
	cmd.trackingLink = trackingLink

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatching actor.
func (c DispatchOrderCommand) Actor() order.Actor {
	return c.actor
}

// TrackingID returns the carrier tracking identifier.
func (c DispatchOrderCommand) TrackingID() string {
	return c.trackingID
}

// TrackingLink returns the carrier tracking link.
func (c DispatchOrderCommand) TrackingLink() string {
	return c.trackingLink
}

func (c *DispatchOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DispatchOrderCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
