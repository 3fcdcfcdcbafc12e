// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"azhaboost/cmd"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/wire"
	"azhaboost/pkg/database"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, config.Session.CheckInTTL, logger)

	// Wire all dependencies
	app, err := wire.Wiring(ctx, repos, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if app.Scheduler != nil {
		if err := app.Scheduler.Start(ctx); err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	if app.Scheduler != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Scheduler.Stop(stopCtx); err != nil {
			logger.Warn("Scheduler did not stop cleanly", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
}
