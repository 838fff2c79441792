package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"turmeric-trace/cmd/config"
	migration "turmeric-trace/cmd/database/migrate"
	"turmeric-trace/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("connecting database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	app, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("building app: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
