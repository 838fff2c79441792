package config

import (
	"context"
	"os"
	"time"

	"turmeric-trace/internal/api/handlers"
	"turmeric-trace/internal/api/routes"
	"turmeric-trace/internal/middleware"
	"turmeric-trace/internal/utils"
	"turmeric-trace/internal/utils/mailing"
	"turmeric-trace/internal/utils/metrics"
	"turmeric-trace/internal/utils/storage"
	"turmeric-trace/pkg/admin"
	"turmeric-trace/pkg/attachment"
	"turmeric-trace/pkg/catalog"
	"turmeric-trace/pkg/factory"
	"turmeric-trace/pkg/farm"
	"turmeric-trace/pkg/jwt"
	"turmeric-trace/pkg/lab"
	"turmeric-trace/pkg/notification"
	"turmeric-trace/pkg/strapi"
	"turmeric-trace/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionSweepInterval = 15 * time.Minute

func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.LoadConfig()
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Bangkok",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	backendMetrics := metrics.NewBackend()
	backendTimeout := time.Duration(utils.GetConfigInt("BACKEND_TIMEOUT_SECONDS", 15)) * time.Second
	backend, err := strapi.NewClient(utils.GetConfig("BACKEND_URL"), backendTimeout, strapi.WithMetrics(backendMetrics))
	if err != nil {
		return nil, err
	}
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	appURL := utils.GetConfig("APP_URL")

	// Repository
	userRepository := user.NewUserRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	farmRepository := farm.NewFarmRepository(backend)
	labRepository := lab.NewLabRepository(backend)
	factoryRepository := factory.NewFactoryRepository(backend)
	adminRepository := admin.NewAdminRepository(backend)
	catalogRepository := catalog.NewCatalogRepository(backend)

	// Service
	jwtService := jwt.NewJWTService()
	userService, err := user.NewUserService(userRepository, backend, jwtService)
	if err != nil {
		return nil, err
	}
	farmService := farm.NewFarmService(farmRepository)
	labService := lab.NewLabService(labRepository)
	factoryService := factory.NewFactoryService(factoryRepository, s3, mailer, appURL)
	adminService := admin.NewAdminService(adminRepository)
	notificationService := notification.NewNotificationService(notificationRepository, notification.NewNotificationFeed(backend))
	attachmentService := attachment.NewAttachmentService(backend)
	catalogService := catalog.NewCatalogService(catalogRepository, appURL)

	go user.SweepExpiredSessions(ctx, userRepository, sessionSweepInterval)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	farmHandler := handlers.NewFarmHandler(farmService, validator)
	labHandler := handlers.NewLabHandler(labService, validator)
	factoryHandler := handlers.NewFactoryHandler(factoryService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		FarmHandler:         farmHandler,
		LabHandler:          labHandler,
		FactoryHandler:      factoryHandler,
		AdminHandler:        adminHandler,
		NotificationHandler: notificationHandler,
		AttachmentHandler:   attachmentHandler,
		CatalogHandler:      catalogHandler,
		Middleware:          middlewares,
		UserService:         userService,
		Metrics:             backendMetrics.Registry,
		RequestTimeout:      backendTimeout * 2,
	}
	routesConfig.Setup()
	return app, nil
}
