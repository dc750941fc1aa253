package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCmd(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testBranchID, testRequester,
		[]commands.ItemInput{{ID: kernel.NewUUID(), QtyRequested: 5, UnitPrice: 250}},
		"monthly restock")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCmd(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &SpyNotifier{}
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, notifier.Outcomes, 1)
	require.Equal(t, order.EdgeRequest, notifier.Outcomes[0].Edge)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, &SpyNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCmd(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &SpyNotifier{}
	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.Empty(t, notifier.Outcomes, "no fan-out before the commit")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommand_RejectsNonBranchRequester(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testBranchID, testManager,
		[]commands.ItemInput{{ID: kernel.NewUUID(), QtyRequested: 5, UnitPrice: 250}}, "")
	require.NoError(t, err) // role fit is the aggregate's call

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, &SpyNotifier{})
	require.Error(t, h.Handle(ctx, cmd))
}

func TestCreateOrderCommand_RequiresItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testBranchID, testRequester, nil, "")
	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}
