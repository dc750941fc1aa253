package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRaiseIssueCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusManagerApproved, order.SubstageNone)
	cmd, err := commands.NewRaiseIssueCommand(aggregate.ID(), testRequester, "quantity too low", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	issueRepo := new(MockIssueRepository)
	uow := new(MockOrderIssueUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("IssueRepository").Return(issueRepo).Once(),
		issueRepo.On("Add", mock.Anything, mock.AnythingOfType("*issue.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderIssueUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &SpyNotifier{}
	h := commands.NewRaiseIssueCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.StatusIssueRaised, aggregate.Status())
	require.Len(t, notifier.Outcomes, 1)
	require.Equal(t, order.EdgeRaiseIssue, notifier.Outcomes[0].Edge)

	entry := issueRepo.Calls[0].Arguments.Get(1).(*issue.Message)
	require.Equal(t, "quantity too low", entry.Text())
	require.Equal(t, order.RoleBranchUser, entry.SenderRole())
	require.True(t, entry.IsGeneral())

	orderRepo.AssertExpectations(t)
	issueRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRaiseIssueCommandHandler_Handle_InvalidState(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusRequested, order.SubstageNone)
	cmd, err := commands.NewRaiseIssueCommand(aggregate.ID(), testRequester, "too early", nil, nil)
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

	h := commands.NewRaiseIssueCommandHandler(factory, &SpyNotifier{})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	require.Equal(t, order.StatusRequested, aggregate.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRaiseIssueCommand_RequiresMessage(t *testing.T) {
	_, err := commands.NewRaiseIssueCommand(
		restoredOrder(t, order.StatusManagerApproved, order.SubstageNone).ID(),
		testRequester, "   ", nil, nil)
	require.ErrorIs(t, err, commands.ErrMessageIsRequired)
}
