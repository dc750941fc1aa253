package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createRequestedOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()

	original := suite.createRequestedOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Number(), retrieved.Number())
	suite.Equal(original.BranchID(), retrieved.BranchID())
	suite.Equal(original.RequesterID(), retrieved.RequesterID())
	suite.Equal(order.StatusRequested, retrieved.Status())
	suite.Equal(order.SubstageNone, retrieved.Substage())
	suite.Equal(1, retrieved.Version())
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal(original.Items()[0].ID(), retrieved.Items()[0].ID())
	suite.Equal(5, retrieved.Items()[0].QtyRequested())
	suite.Nil(retrieved.Items()[0].QtyApproved())
	suite.Equal(int64(250), retrieved.Items()[0].UnitPrice())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndBumpsVersion() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	original := suite.createRequestedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	_, err = loaded.Approve(suite.manager(), suite.fullApprovals(loaded))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusManagerApproved, retrieved.Status())
	suite.Equal(2, retrieved.Version())
	for _, item := range retrieved.Items() {
		suite.Require().NotNil(item.QtyApproved())
		suite.Equal(item.QtyRequested(), *item.QtyApproved())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	original := suite.createRequestedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	// Two readers load the same version
	first, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	_, err = first.Approve(suite.manager(), suite.fullApprovals(first))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second writer carries the loaded version and must lose
	_, err = second.Approve(suite.manager(), suite.fullApprovals(second))
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// The winning write is intact
	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusManagerApproved, retrieved.Status())
	suite.Equal(2, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReceivedBefore_FiltersByStatusAndCutoff() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	cutoff := time.Now().UTC().Add(-72 * time.Hour)

	stale := suite.createReceivedOrder(cutoff.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, stale))

	fresh := suite.createReceivedOrder(cutoff.Add(time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	requested := suite.createRequestedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, requested))

	orders, err := suite.repository.GetAllReceivedBefore(ctx, cutoff)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.Equal(stale.ID(), orders[0].ID())
	suite.Equal(order.StatusReceived, orders[0].Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReceivedBefore_NoMatches_ReturnsEmptySlice() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	requested := suite.createRequestedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, requested))

	orders, err := suite.repository.GetAllReceivedBefore(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Empty(orders)

	suite.tracker.AssertExpectations(suite.T())
}

// manager returns an acting warehouse manager.
func (suite *OrderRepositoryIntegrationTestSuite) manager() order.Actor {
	return order.Actor{ID: kernel.NewUUID(), Role: order.RoleManager}
}

// fullApprovals approves every item at its requested quantity.
func (suite *OrderRepositoryIntegrationTestSuite) fullApprovals(o *order.Order) []order.QuantityApproval {
	approvals := make([]order.QuantityApproval, 0, len(o.Items()))
	for _, item := range o.Items() {
		approvals = append(approvals, order.QuantityApproval{ItemID: item.ID(), Qty: item.QtyRequested()})
	}
	return approvals
}

// createRequestedOrder creates a freshly requested order with two items.
func (suite *OrderRepositoryIntegrationTestSuite) createRequestedOrder() *order.Order {
	id := kernel.NewUUID()
	requester := order.Actor{ID: kernel.NewUUID(), Role: order.RoleBranchUser}

	itemA, err := order.NewItem(kernel.NewUUID(), 5, 250)
	suite.Require().NoError(err)
	itemB, err := order.NewItem(kernel.NewUUID(), 2, 100)
	suite.Require().NoError(err)

	testOrder, _, err := order.NewOrder(
		id, order.NewNumber(id), kernel.NewUUID(), requester, []*order.Item{itemA, itemB}, "urgent restock",
	)
	suite.Require().NoError(err)
	return testOrder
}

// createReceivedOrder restores an order already in Received status with the
// given receipt time.
func (suite *OrderRepositoryIntegrationTestSuite) createReceivedOrder(receivedAt time.Time) *order.Order {
	id := kernel.NewUUID()
	qty := 5
	item, err := order.RestoreItem(kernel.NewUUID(), 5, &qty, 250, true)
	suite.Require().NoError(err)

	requestedAt := receivedAt.Add(-24 * time.Hour)
	testOrder, err := order.RestoreOrder(
		id, order.NewNumber(id), kernel.NewUUID(), kernel.NewUUID(),
		order.StatusReceived, order.SubstageNone,
		[]*order.Item{item},
		"", "", "TRK-1", "https://tracker.example/TRK-1",
		order.Stamps{RequestedAt: requestedAt, ReceivedAt: &receivedAt},
		1,
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
