package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/hugh/plantnet/internal/tasks"
	"github.com/hugh/plantnet/pkg/config"
	"github.com/hugh/plantnet/pkg/mail"
	"github.com/hugh/plantnet/pkg/queue"
	"github.com/hugh/plantnet/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting plantNet notification worker", "smtp", cfg.Mail.Enabled())

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, 5)

	// Create task handler
	handler := tasks.NewHandler(mail.New(&cfg.Mail, logger), logger)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
	}

	// Wait for context cancellation
	<-ctx.Done()

	logger.Info("worker stopped")
}
