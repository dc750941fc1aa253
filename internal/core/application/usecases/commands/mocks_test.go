package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllReceivedBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, msg *issue.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockIssueRepository) GetThread(_ context.Context, _ kernel.UUID) (issue.Thread, error) {
	return nil, errors.New("not implemented in mock")
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}
func (m *MockNotificationRepository) GetAllForUser(_ context.Context, _ kernel.UUID) ([]*notification.Notification, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderIssueUoW struct{ MockOrderUoW }

func (m *MockOrderIssueUoW) IssueRepository() ports.IssueRepository {
	args := m.Called()
	return args.Get(0).(ports.IssueRepository)
}

type MockOrderIssueUoWFactory struct{ mock.Mock }

func (m *MockOrderIssueUoWFactory) Create() commands.OrderIssueUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderIssueUoW)
}

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockMediaStore struct{ mock.Mock }

func (m *MockMediaStore) HasAttachmentsForStage(ctx context.Context, orderID kernel.UUID, edge order.Edge) (bool, error) {
	args := m.Called(ctx, orderID, edge)
	return args.Bool(0), args.Error(1)
}
func (m *MockMediaStore) AddAttachment(_ context.Context, _ kernel.UUID, _ order.Edge, _, _, _ string) error {
	return errors.New("not implemented in mock")
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) UserIDsByRole(ctx context.Context, role order.Role, branchID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, role, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockChannelClient struct{ mock.Mock }

func (m *MockChannelClient) SendEmail(ctx context.Context, userID kernel.UUID, subject, body string) ports.ChannelDelivery {
	args := m.Called(ctx, userID, subject, body)
	return args.Get(0).(ports.ChannelDelivery)
}
func (m *MockChannelClient) SendMessage(ctx context.Context, userID kernel.UUID, text string) ports.ChannelDelivery {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(ports.ChannelDelivery)
}

// SpyNotifier records fan-out calls without side effects.
type SpyNotifier struct {
	Outcomes []order.TransitionOutcome
}

func (s *SpyNotifier) Notify(_ context.Context, _, _ kernel.UUID, outcome order.TransitionOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
}

var (
	testBranchID    = kernel.NewUUID()
	testRequesterID = kernel.NewUUID()
	testManager     = order.Actor{ID: kernel.NewUUID(), Role: order.RoleManager}
	testRequester   = order.Actor{ID: testRequesterID, Role: order.RoleBranchUser}
)

func restoredOrder(t *testing.T, status order.Status, substage order.Substage) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 10, 100)
	require.NoError(t, err)
	id := kernel.NewUUID()
	o, err := order.RestoreOrder(
		id, order.NewNumber(id), testBranchID, testRequesterID,
		status, substage, []*order.Item{item},
		"", "", "", "",
		order.Stamps{RequestedAt: time.Now().UTC()}, 1,
	)
	require.NoError(t, err)
	return o
}

func fullApprovalsFor(o *order.Order) []order.QuantityApproval {
	approvals := make([]order.QuantityApproval, 0, len(o.Items()))
	for _, item := range o.Items() {
		approvals = append(approvals, order.QuantityApproval{ItemID: item.ID(), Qty: item.QtyRequested()})
	}
	return approvals
}
