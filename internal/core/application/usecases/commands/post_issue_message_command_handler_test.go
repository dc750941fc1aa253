package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostIssueMessageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusManagerApproved, order.SubstageNone)
	cmd, err := commands.NewPostIssueMessageCommand(aggregate.ID(), testManager, "shipment slipped a day", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	issueRepo := new(MockIssueRepository)
	uow := new(MockOrderIssueUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("IssueRepository").Return(issueRepo).Once(),
		issueRepo.On("Add", mock.Anything, mock.AnythingOfType("*issue.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderIssueUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostIssueMessageCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	issueRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPostIssueMessageCommandHandler_Handle_RequestedOrderRefusesMessages(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusRequested, order.SubstageNone)
	cmd, err := commands.NewPostIssueMessageCommand(aggregate.ID(), testRequester, "any update", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderIssueUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderIssueUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostIssueMessageCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidState)
}

func TestPostIssueMessageCommandHandler_Handle_StrangerBranchUser(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusManagerApproved, order.SubstageNone)
	stranger := order.Actor{ID: kernel.NewUUID(), Role: order.RoleBranchUser}
	cmd, err := commands.NewPostIssueMessageCommand(aggregate.ID(), stranger, "not my order", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderIssueUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderIssueUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostIssueMessageCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrForbiddenTransition)
}
