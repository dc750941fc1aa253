package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// RaiseIssueCommandHandler moves a ManagerApproved order to IssueRaised and
// appends the dispute to the negotiation ledger. The state change and the
// ledger entry commit as one transaction; the manager is notified after the
// commit.
type RaiseIssueCommandHandler struct {
	uowFactory OrderIssueUoWFactory
	notifier   Notifier
}

// NewRaiseIssueCommandHandler creates a handler for raising issues.
func NewRaiseIssueCommandHandler(uowFactory OrderIssueUoWFactory, notifier Notifier) RaiseIssueCommandHandler {
	return RaiseIssueCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the raise-issue command.
func (h *RaiseIssueCommandHandler) Handle(ctx context.Context, cmd RaiseIssueCommand) error {
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

	outcome, err := aggregate.RaiseIssue(cmd.Actor(), cmd.Message())
	if err != nil {
		return err
	}

	entry, err := issue.NewMessage(
		kernel.NewUUID(), aggregate.ID(), cmd.ItemID(), cmd.Actor(), cmd.Message(), cmd.ProposedQty())
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
