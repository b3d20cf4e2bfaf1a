package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hugh/plantnet/internal/api/handlers"
	"github.com/hugh/plantnet/internal/testutil"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		mongo  handlers.MongoPinger
		status int
		body   string
	}{
		{"healthy", fakePinger{}, http.StatusOK, "healthy"},
		{"db_down", fakePinger{err: errors.New("no primary")}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.mongo, nil)

			rr := serve(http.HandlerFunc(h.Health), testutil.UnauthenticatedRequest(t, http.MethodGet, "/health", nil))
			testutil.AssertStatus(t, rr, tt.status)

			var resp handlers.HealthResponse
			testutil.ParseJSONResponse(t, rr, &resp)
			assert.Equal(t, tt.body, resp.Status)
			assert.Equal(t, tt.body, resp.Services["database"])
			assert.NotContains(t, resp.Services, "redis")

			rr = serve(http.HandlerFunc(h.Ready), testutil.UnauthenticatedRequest(t, http.MethodGet, "/ready", nil))
			testutil.AssertStatus(t, rr, tt.status)
		})
	}
}
