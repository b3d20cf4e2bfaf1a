package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hugh/plantnet/internal/api/response"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoPinger is satisfied by *mongo.Client.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthHandler struct {
	mongo MongoPinger
	redis redis.Cmdable
}

// NewHealthHandler takes an optional redis client; pass nil when the
// deployment runs without one.
func NewHealthHandler(mongo MongoPinger, redis redis.Cmdable) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	services := make(map[string]string)
	status := "healthy"

	// Check database
	if h.mongo == nil || h.mongo.Ping(ctx, readpref.Primary()) != nil {
		services["database"] = "unhealthy"
		status = "unhealthy"
	} else {
		services["database"] = "healthy"
	}

	// Check Redis
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			services["redis"] = "unhealthy"
			status = "unhealthy"
		} else {
			services["redis"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response.JSON(w, statusCode, HealthResponse{
		Status:   status,
		Services: services,
	})
}

// Ready reports whether the store can take traffic. Redis is optional and
// does not gate readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.mongo == nil || h.mongo.Ping(ctx, readpref.Primary()) != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Hello from plantNet Server.."))
}
