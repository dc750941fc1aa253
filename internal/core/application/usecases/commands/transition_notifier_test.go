package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approveOutcome(orderID kernel.UUID) order.TransitionOutcome {
	return order.TransitionOutcome{
		Edge:        order.EdgeApprove,
		OrderID:     orderID,
		OrderNumber: "REQ-1A2B3C4D",
		From:        order.StatusRequested,
		To:          order.StatusManagerApproved,
		ActorID:     testManager.ID,
		ActorRole:   order.RoleManager,
		OccurredAt:  time.Now().UTC(),
	}
}

func TestTransitionNotifier_Notify_StoresRecordPerRecipient(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	channels := new(MockChannelClient)
	channels.On("SendEmail", mock.Anything, testRequesterID, mock.Anything, mock.Anything).
		Return(ports.ChannelDelivery{Accepted: true}).Once()
	channels.On("SendMessage", mock.Anything, testRequesterID, mock.Anything).
		Return(ports.ChannelDelivery{Accepted: false, Detail: "relay unreachable"}).Once()

	repo := new(MockNotificationRepository)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	directory := new(MockUserDirectory)

	notifier := commands.NewTransitionNotifier(
		services.NewNotificationRouter(), directory, channels, factory, slog.Default())
	notifier.Notify(ctx, testBranchID, testRequesterID, approveOutcome(orderID))

	record := repo.Calls[0].Arguments.Get(1).(*notification.Notification)
	require.Equal(t, testRequesterID, record.UserID())
	require.Equal(t, order.EdgeApprove, record.Kind())
	require.True(t, record.IsEmail())
	require.False(t, record.IsMessaging(), "rejected channel leaves the flag unset")
	require.False(t, record.IsRead())

	channels.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionNotifier_Notify_ResolvesRoleAudience(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	managerA := kernel.NewUUID()
	managerB := kernel.NewUUID()

	outcome := approveOutcome(orderID)
	outcome.Edge = order.EdgeRaiseIssue
	outcome.From = order.StatusManagerApproved
	outcome.To = order.StatusIssueRaised

	directory := new(MockUserDirectory)
	directory.On("UserIDsByRole", mock.Anything, order.RoleManager, testBranchID).
		Return([]kernel.UUID{managerA, managerB}, nil).Once()

	channels := new(MockChannelClient)
	channels.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.ChannelDelivery{Accepted: true}).Twice()
	channels.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.ChannelDelivery{Accepted: true}).Twice()

	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice()

	uow := new(MockNotificationUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := commands.NewTransitionNotifier(
		services.NewNotificationRouter(), directory, channels, factory, slog.Default())
	notifier.Notify(ctx, testBranchID, testRequesterID, outcome)

	recipients := map[string]bool{}
	for _, call := range repo.Calls {
		record := call.Arguments.Get(1).(*notification.Notification)
		recipients[record.UserID().String()] = true
	}
	require.True(t, recipients[managerA.String()])
	require.True(t, recipients[managerB.String()])

	directory.AssertExpectations(t)
	channels.AssertExpectations(t)
	repo.AssertExpectations(t)
}
