package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/issuerepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection
// and runs migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&issuerepo.MessageDTO{},
		&notificationrepo.NotificationDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, issue_messages, notifications").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances with access to all repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.IssueRepository())
	suite.NotNil(uow1.NotificationRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid
// transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_NegotiationWorkflow verifies that a state transition and its
// ledger entry persist atomically within a single transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_NegotiationWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder, requester := createRequestedTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Manager approves, requester raises an issue
	manager := order.Actor{ID: kernel.NewUUID(), Role: order.RoleManager}
	_, err = testOrder.Approve(manager, approveAllItems(testOrder))
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	loaded, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = loaded.RaiseIssue(requester, "too few units approved")
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, loaded)
	suite.Require().NoError(err)

	itemID := loaded.Items()[0].ID()
	proposed := 3
	message, err := issue.NewMessage(
		kernel.NewUUID(), loaded.ID(), &itemID, requester, "too few units approved", &proposed,
	)
	suite.Require().NoError(err)
	err = uow.IssueRepository().Add(ctx, message)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify both writes persisted using a new unit of work
	newUow := suite.factory.Create()

	retrieved, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusIssueRaised, retrieved.Status())

	thread, err := newUow.IssueRepository().GetThread(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(thread, 1)
	suite.Equal("too few units approved", thread[0].Text())
	suite.Require().NotNil(thread[0].ProposedQty())
	suite.Equal(3, *thread[0].ProposedQty())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made across repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder, requester := createRequestedTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	message, err := issue.NewMessage(
		kernel.NewUUID(), testOrder.ID(), nil, requester, "please expedite", nil,
	)
	suite.Require().NoError(err)
	err = uow.IssueRepository().Add(ctx, message)
	suite.Require().NoError(err)

	record, err := notification.NewNotification(
		kernel.NewUUID(), order.EdgeRequest, "Order requested", "A new order awaits review",
		kernel.NewUUID(), testOrder.ID(),
	)
	suite.Require().NoError(err)
	err = uow.NotificationRepository().Add(ctx, record)
	suite.Require().NoError(err)

	// All three writes are visible within the transaction
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Nothing persisted
	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	thread, err := newUow.IssueRepository().GetThread(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(thread, "Ledger should be empty after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1, _ := createRequestedTestOrder()
	order2, _ := createRequestedTestOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work without
// explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder, _ := createRequestedTestOrder()

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
}

// TestUnitOfWork_NotificationReadReceipt verifies the notification repository
// round trip through the unit of work.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_NotificationReadReceipt() {
	ctx := context.Background()
	uow := suite.factory.Create()

	userID := kernel.NewUUID()
	record, err := notification.NewNotification(
		kernel.NewUUID(), order.EdgeApprove, "Order approved", "Your order was approved",
		userID, kernel.NewUUID(),
	)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.NotificationRepository().Add(ctx, record)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Mark as read in a second unit of work
	newUow := suite.factory.Create()
	err = newUow.Begin(ctx)
	suite.Require().NoError(err)

	loaded, err := newUow.NotificationRepository().Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsRead())

	loaded.MarkRead()
	err = newUow.NotificationRepository().Update(ctx, loaded)
	suite.Require().NoError(err)
	err = newUow.Commit(ctx)
	suite.Require().NoError(err)

	all, err := suite.factory.Create().NotificationRepository().GetAllForUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.True(all[0].IsRead())
}

// createRequestedTestOrder creates a valid requested order and returns it
// together with its requester.
func createRequestedTestOrder() (*order.Order, order.Actor) {
	id := kernel.NewUUID()
	requester := order.Actor{ID: kernel.NewUUID(), Role: order.RoleBranchUser}
	item, _ := order.NewItem(kernel.NewUUID(), 5, 120)
	testOrder, _, _ := order.NewOrder(
		id, order.NewNumber(id), kernel.NewUUID(), requester, []*order.Item{item}, "",
	)
	return testOrder, requester
}

// approveAllItems approves every item at its requested quantity.
func approveAllItems(o *order.Order) []order.QuantityApproval {
	approvals := make([]order.QuantityApproval, 0, len(o.Items()))
	for _, item := range o.Items() {
		approvals = append(approvals, order.QuantityApproval{ItemID: item.ID(), Qty: item.QtyRequested()})
	}
	return approvals
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
