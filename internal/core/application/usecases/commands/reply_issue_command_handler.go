package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// ReplyIssueCommandHandler moves an IssueRaised order back to
// ManagerApproved, applying any quantity revisions, and appends the reply
// to the negotiation ledger in the same transaction. The requester is
// notified after the commit.
type ReplyIssueCommandHandler struct {
	uowFactory OrderIssueUoWFactory
	notifier   Notifier
}

// NewReplyIssueCommandHandler creates a handler for issue replies.
func NewReplyIssueCommandHandler(uowFactory OrderIssueUoWFactory, notifier Notifier) ReplyIssueCommandHandler {
	return ReplyIssueCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reply command.
func (h *ReplyIssueCommandHandler) Handle(ctx context.Context, cmd ReplyIssueCommand) error {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	outcome, err := aggregate.Reply(cmd.Actor(), cmd.Reply(), cmd.Revisions())
	if err != nil {
		return err
	}

	entry, err := issue.NewMessage(
		kernel.NewUUID(), aggregate.ID(), nil, cmd.Actor(), cmd.Reply(), nil)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.IssueRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, aggregate.BranchID(), aggregate.RequesterID(), outcome)
	return nil
}
