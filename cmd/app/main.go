package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/issuerepo"
	"fulfillment/internal/adapters/out/postgres/mediarepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/userdir"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultCloseGraceHours = 72

func main() {
	configs := getConfigs()

	gormDB := connectDB(configs)
	migrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.UnitOfWorkFactory(),
		app.CreateCloseOrderCommandHandler(),
		closeGracePeriod(configs),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		EmailRelayURL:         os.Getenv("EMAIL_RELAY_URL"),
		MessagingRelayURL:     os.Getenv("MESSAGING_RELAY_URL"),
		RelayAPIKey:           os.Getenv("RELAY_API_KEY"),
		CloseGracePeriodHours: os.Getenv("CLOSE_GRACE_PERIOD_HOURS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func closeGracePeriod(configs cmd.Config) time.Duration {
	hours, err := strconv.Atoi(configs.CloseGracePeriodHours)
	if err != nil || hours <= 0 {
		hours = defaultCloseGraceHours
	}
	return time.Duration(hours) * time.Hour
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&issuerepo.MessageDTO{},
		&notificationrepo.NotificationDTO{},
		&mediarepo.AttachmentDTO{},
		&userdir.UserDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpadapter.NewServer(httpadapter.ServerHandlers{
		CreateOrder:          app.CreateCreateOrderCommandHandler(),
		ApproveOrder:         app.CreateApproveOrderCommandHandler(),
		ConfirmOrder:         app.CreateConfirmOrderCommandHandler(),
		RaiseIssue:           app.CreateRaiseIssueCommandHandler(),
		ReplyIssue:           app.CreateReplyIssueCommandHandler(),
		PostIssueMessage:     app.CreatePostIssueMessageCommandHandler(),
		SetArrangingStage:    app.CreateSetArrangingStageCommandHandler(),
		StartPackaging:       app.CreateStartPackagingCommandHandler(),
		CompletePackaging:    app.CreateCompletePackagingCommandHandler(),
		DispatchOrder:        app.CreateDispatchOrderCommandHandler(),
		ConfirmReceived:      app.CreateConfirmReceivedCommandHandler(),
		CloseOrder:           app.CreateCloseOrderCommandHandler(),
		MarkNotificationRead: app.CreateMarkNotificationReadCommandHandler(),
		GetOrder:             app.CreateGetOrderQueryHandler(),
		GetIssueThread:       app.CreateGetIssueThreadQueryHandler(),
		GetNotifications:     app.CreateGetNotificationsQueryHandler(),
	}, app.MediaStore())

	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
