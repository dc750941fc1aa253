package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// validateActor checks that an acting user reference is complete.
func validateActor(actor order.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	return actor.Role.Validate()
}

// runOrderTransition is the shared skeleton of the transition handlers:
// load the aggregate, apply one transition, persist with the optimistic
// version check, commit, then fan out. The apply callback returns the
// outcome the notifier consumes.
func runOrderTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	notifier Notifier,
	orderID kernel.UUID,
	apply func(o *order.Order) (order.TransitionOutcome, error),
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	outcome, err := apply(aggregate)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifier.Notify(ctx, aggregate.BranchID(), aggregate.RequesterID(), outcome)
	return nil
}
