package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetArrangingStageCommandIsNotConstructed = errors.New(
		"SetArrangingStageCommand must be created via NewSetArrangingStageCommand constructor",
	)
	ErrSubstageIsNotArranging = errors.New("substage is not an arranging substage")
)

// SetArrangingStageCommand represents a manager moving an order into the
// Arranging status or advancing its substage.
type SetArrangingStageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	target  order.Substage

	guard guard.ConstructorGuard
}

// NewSetArrangingStageCommand creates a command to set an arranging
// substage.
func NewSetArrangingStageCommand(
	orderID kernel.UUID, actor order.Actor, target order.Substage,
) (SetArrangingStageCommand, error) {
	cmd := SetArrangingStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return SetArrangingStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetArrangingStageCommand) Validate() error {
	return c.guard.Validate(ErrSetArrangingStageCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c SetArrangingStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the advancing actor.
func (c SetArrangingStageCommand) Actor() order.Actor {
	return c.actor
}

// Target returns the substage to reach.
func (c SetArrangingStageCommand) Target() order.Substage {
	return c.target
}

func (c *SetArrangingStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetArrangingStageCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SetArrangingStageCommand) setTarget(target order.Substage) error {
	if _, ok := order.ArrangingEdge(target); !ok {
		return ErrSubstageIsNotArranging
	}

	c.target = target
	return nil
}
