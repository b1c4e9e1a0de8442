package main

import (
	"Recipe-Sharing/cmd/config"
	migration "Recipe-Sharing/cmd/database/migrate"
	"Recipe-Sharing/internal/utils"
	"Recipe-Sharing/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	log := logger.New(logger.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	db, err := config.ConnectDB(log)
	if err != nil {
		return err
	}

	if err := migration.Migrate(db); err != nil {
		return err
	}

	app, accessLog, err := config.NewApp(db, log)
	if err != nil {
		return err
	}
	defer accessLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + utils.GetConfig("APP_PORT")
		log.Info("listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
