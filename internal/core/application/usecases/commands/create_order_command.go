package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemInput is one requested order line as submitted by the branch.
type ItemInput struct {
	ID           kernel.UUID
	QtyRequested int
	UnitPrice    int64
}

// CreateOrderCommand represents a branch user's request to open a new order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	branchID  kernel.UUID
	requester order.Actor
	items     []ItemInput
	remarks   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates that the IDs are valid and at least one item is requested;
// per-line quantity and price rules are enforced by the domain model.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	branchID kernel.UUID,
	requester order.Actor,
	items []ItemInput,
	remarks string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBranchID(branchID),
		cmd.setRequester(requester),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.remarks = remarks

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the ordering branch.
func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

// Requester returns the submitting actor.
func (c CreateOrderCommand) Requester() order.Actor {
	return c.requester
}

// Items returns the requested lines.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

// Remarks returns the free-form remarks for the order.
func (c CreateOrderCommand) Remarks() string {
	return c.remarks
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *CreateOrderCommand) setRequester(requester order.Actor) error {
	if err := requester.ID.Validate(); err != nil {
		return err
	}
	if err := requester.Role.Validate(); err != nil {
		return err
	}

	c.requester = requester
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.ID.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
