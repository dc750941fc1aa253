package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// issueMessageAction names the ledger append in error payloads. It is not a
// lifecycle edge; posting never changes the order's status.
const issueMessageAction = "issue.message"

// PostIssueMessageCommandHandler appends a ledger entry to an order that
// permits messaging. Branch users may only write to their own orders.
type PostIssueMessageCommandHandler struct {
	uowFactory OrderIssueUoWFactory
}

// NewPostIssueMessageCommandHandler creates a handler for ledger appends.
func NewPostIssueMessageCommandHandler(uowFactory OrderIssueUoWFactory) PostIssueMessageCommandHandler {
	return PostIssueMessageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ledger append command.
func (h *PostIssueMessageCommandHandler) Handle(ctx context.Context, cmd PostIssueMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if actor.Role == order.RoleBranchUser && !actor.ID.IsEqual(aggregate.RequesterID()) {
		return errs.NewForbiddenTransitionError(issueMessageAction, actor.Role.String())
	}
	if !aggregate.PermitsMessaging() {
		return errs.NewInvalidStateError(issueMessageAction, aggregate.Status().String())
	}

	entry, err := issue.NewMessage(
		kernel.NewUUID(), aggregate.ID(), cmd.ItemID(), actor, cmd.Text(), cmd.ProposedQty())
	if err != nil {
		return err
	}

	if err = uow.IssueRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
