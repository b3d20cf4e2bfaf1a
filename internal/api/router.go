package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/plantnet/internal/api/handlers"
	"github.com/hugh/plantnet/internal/api/middleware"
	"github.com/hugh/plantnet/internal/auth"
	"github.com/hugh/plantnet/internal/database"
	"github.com/hugh/plantnet/internal/tasks"
	"github.com/redis/go-redis/v9"
)

// Compile-time checks that the Mongo repositories fit the handlers
var (
	_ handlers.UserStore   = (*database.UserRepo)(nil)
	_ handlers.PlantStore  = (*database.PlantRepo)(nil)
	_ handlers.OrderStore  = (*database.OrderRepo)(nil)
	_ handlers.ReportStore = (*database.ReportRepo)(nil)
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	Users   handlers.UserStore
	Plants  handlers.PlantStore
	Orders  handlers.OrderStore
	Reports handlers.ReportStore

	Mongo  handlers.MongoPinger
	Redis  redis.Cmdable // optional
	Logger *slog.Logger

	Tokens      auth.TokenService
	TokenExpiry time.Duration
	// SecureCookies switches the session cookie to Secure, SameSite=None.
	SecureCookies bool

	Notifier       *tasks.Notifier // optional
	AllowedOrigins []string        // CORS allowed origins
	Limiter        middleware.Limiter
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.Limiter != nil {
		r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:5174"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Mongo, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.Tokens, cfg.TokenExpiry, cfg.SecureCookies)
	userHandler := handlers.NewUserHandler(cfg.Users, cfg.Notifier)
	plantHandler := handlers.NewPlantHandler(cfg.Plants)
	orderHandler := handlers.NewOrderHandler(cfg.Orders, cfg.Reports, cfg.Notifier)
	statsHandler := handlers.NewStatsHandler(cfg.Reports)
	paymentHandler := handlers.NewPaymentHandler(cfg.Plants)

	requireToken := middleware.Auth(cfg.Tokens)
	requireAdmin := middleware.RequireAdmin(cfg.Users)
	requireSeller := middleware.RequireSeller(cfg.Users)

	r.Get("/", handlers.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Session
	r.Post("/jwt", authHandler.Token)
	r.Get("/logout", authHandler.Logout)

	// Users
	r.Get("/users/role/{email}", userHandler.GetRole)
	r.Post("/users/{email}", userHandler.Create)
	r.Patch("/users/{email}", userHandler.RequestRole)
	r.With(requireToken, requireAdmin).Get("/all-user/{email}", userHandler.List)
	r.With(requireToken, requireAdmin).Patch("/user/role/{email}", userHandler.ApproveRole)

	// Plants
	r.Route("/plants", func(r chi.Router) {
		r.Get("/", plantHandler.List)
		r.Get("/{id}", plantHandler.Get)
		r.With(requireToken).Patch("/quantity/{id}", plantHandler.UpdateQuantity)

		r.Group(func(r chi.Router) {
			r.Use(requireToken, requireSeller)
			r.Get("/seller", plantHandler.ListMine)
			r.Post("/", plantHandler.Create)
			r.Delete("/{id}", plantHandler.Delete)
		})
	})

	// Orders and checkout
	r.Group(func(r chi.Router) {
		r.Use(requireToken)

		r.Post("/order", orderHandler.Create)
		r.Patch("/orders-status/{id}", orderHandler.UpdateStatus)
		r.Get("/orders/customers/{email}", orderHandler.ForCustomer)
		r.Get("/orders/seller/{email}", orderHandler.ForSeller)
		r.Delete("/orders/{id}", orderHandler.Delete)
		r.Post("/create-payment-intent", paymentHandler.CreateIntent)

		r.With(requireAdmin).Get("/admin-stat", statsHandler.AdminStats)
	})

	return &Router{r}
}
