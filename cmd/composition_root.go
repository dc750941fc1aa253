package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/channels"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/mediarepo"
	"fulfillment/internal/adapters/out/postgres/userdir"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	media      *mediarepo.GormMediaStore
	notifier   *commands.TransitionNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	relay := channels.NewRelayClient(
		config.EmailRelayURL, config.MessagingRelayURL, config.RelayAPIKey, logger,
	)

	notifier := commands.NewTransitionNotifier(
		services.NewNotificationRouter(),
		userdir.NewGormUserDirectory(gormDB),
		relay,
		FuncNotificationUoWFactory(func() commands.NotificationUoW {
			return uowFactory.Create()
		}),
		logger,
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		media:      mediarepo.NewGormMediaStore(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) MediaStore() ports.MediaStore {
	return c.media
}

func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return &c.uowFactory
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderIssueUoWFactory() commands.OrderIssueUoWFactory {
	return FuncOrderIssueUoWFactory(func() commands.OrderIssueUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRaiseIssueCommandHandler() commands.RaiseIssueCommandHandler {
	return commands.NewRaiseIssueCommandHandler(c.orderIssueUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReplyIssueCommandHandler() commands.ReplyIssueCommandHandler {
	return commands.NewReplyIssueCommandHandler(c.orderIssueUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreatePostIssueMessageCommandHandler() commands.PostIssueMessageCommandHandler {
	return commands.NewPostIssueMessageCommandHandler(c.orderIssueUoWFactory())
}

func (c *CompositionRoot) CreateSetArrangingStageCommandHandler() commands.SetArrangingStageCommandHandler {
	return commands.NewSetArrangingStageCommandHandler(c.orderUoWFactory(), c.media, c.notifier)
}

func (c *CompositionRoot) CreateStartPackagingCommandHandler() commands.StartPackagingCommandHandler {
	return commands.NewStartPackagingCommandHandler(c.orderUoWFactory(), c.media, c.notifier)
}

func (c *CompositionRoot) CreateCompletePackagingCommandHandler() commands.CompletePackagingCommandHandler {
	return commands.NewCompletePackagingCommandHandler(c.orderUoWFactory(), c.media, c.notifier)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.media, c.notifier)
}

func (c *CompositionRoot) CreateConfirmReceivedCommandHandler() commands.ConfirmReceivedCommandHandler {
	return commands.NewConfirmReceivedCommandHandler(c.orderUoWFactory(), c.media, c.notifier)
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	return commands.NewCloseOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIssueThreadQueryHandler() queries.GetIssueThreadQueryHandler {
	return queries.NewGetIssueThreadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderIssueUoWFactory func() commands.OrderIssueUoW

func (f FuncOrderIssueUoWFactory) Create() commands.OrderIssueUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
