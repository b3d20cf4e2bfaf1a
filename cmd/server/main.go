package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/plantnet/internal/api"
	"github.com/hugh/plantnet/internal/api/middleware"
	"github.com/hugh/plantnet/internal/auth"
	"github.com/hugh/plantnet/internal/database"
	"github.com/hugh/plantnet/internal/tasks"
	"github.com/hugh/plantnet/pkg/config"
	"github.com/hugh/plantnet/pkg/queue"
	"github.com/hugh/plantnet/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
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

	logger.Info("starting plantNet server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout())
	mongoClient, err := database.Connect(ctx, &cfg.Mongo, logger)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := mongoClient.Database(cfg.Mongo.Database)

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Mongo.Timeout())
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Warn("failed to ensure indexes", "error", err)
	}
	cancel()

	store := database.NewStore(db)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis, notifications and shared rate limits disabled", "error", err)
		_ = redisClient.Close()
		redisClient = nil
	}

	// Redis-backed pieces only exist when Redis answered
	var (
		redisCmd    redis.Cmdable
		asynqClient *asynq.Client
		notifier    *tasks.Notifier
		limiter     middleware.Limiter
	)
	if redisClient != nil {
		redisCmd = redisClient
		asynqClient = queue.NewClient(&cfg.Redis)
		notifier = tasks.NewNotifier(asynqClient, logger)
		limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	} else {
		memLimiter := middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Users:          store.Users,
		Plants:         store.Plants,
		Orders:         store.Orders,
		Reports:        store.Reports,
		Mongo:          mongoClient,
		Redis:          redisCmd,
		Logger:         logger,
		Tokens:         jwtService,
		TokenExpiry:    jwtService.Expiry(),
		SecureCookies:  cfg.Server.IsProduction(),
		Notifier:       notifier,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        limiter,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if asynqClient != nil {
		asynqClient.Close()
	}

	if redisClient != nil {
		redisClient.Close()
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("database disconnect error", "error", err)
	}

	logger.Info("server stopped")
}
