package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatchOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusPackagingCompleted, order.SubstageNone)
	dispatcher := order.Actor{ID: testManager.ID, Role: order.RoleDispatcher}
	cmd, err := commands.NewDispatchOrderCommand(aggregate.ID(), dispatcher, "TRK-7", "https://track.example/TRK-7")
	require.NoError(t, err)

	media := new(MockMediaStore)
	media.On("HasAttachmentsForStage", mock.Anything, aggregate.ID(), order.EdgeDispatch).Return(true, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &SpyNotifier{}
	h := commands.NewDispatchOrderCommandHandler(factory, media, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.StatusInTransit, aggregate.Status())
	require.Equal(t, "TRK-7", aggregate.TrackingID())
	require.Len(t, notifier.Outcomes, 1)
	media.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_MissingMedia(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusPackagingCompleted, order.SubstageNone)
	dispatcher := order.Actor{ID: testManager.ID, Role: order.RoleDispatcher}
	cmd, err := commands.NewDispatchOrderCommand(aggregate.ID(), dispatcher, "TRK-7", "https://track.example/TRK-7")
	require.NoError(t, err)

	media := new(MockMediaStore)
	media.On("HasAttachmentsForStage", mock.Anything, aggregate.ID(), order.EdgeDispatch).Return(false, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(factory, media, &SpyNotifier{})
	err = h.Handle(ctx, cmd)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "transitMedia")
	require.Equal(t, order.StatusPackagingCompleted, aggregate.Status())
	media.AssertExpectations(t)
}
