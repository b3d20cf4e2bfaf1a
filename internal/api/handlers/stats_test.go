package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/handlers"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"github.com/hugh/plantnet/internal/testutil"
)

func TestStatsHandler_NoOrders(t *testing.T) {
	tc := testutil.NewTestContext(t)
	h := handlers.NewStatsHandler(tc.Store)

	rr := serve(http.HandlerFunc(h.AdminStats), testutil.UnauthenticatedRequest(t, http.MethodGet, "/admin-stat", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var stats models.AdminStats
	testutil.ParseJSONResponse(t, rr, &stats)
	assert.Equal(t, int64(3), stats.TotalUser)
	assert.Zero(t, stats.TotalOrder)
	assert.Zero(t, stats.TotalRevenue)
	assert.Contains(t, rr.Body.String(), `"chartData":[]`)
}

func TestStatsHandler_AggregationFailure(t *testing.T) {
	tc := testutil.NewTestContext(t)
	tc.Store.Fail = apperr.Internal("failed to build admin statistics", errors.New("$group exceeded memory limit"))
	h := handlers.NewStatsHandler(tc.Store)

	rr := serve(http.HandlerFunc(h.AdminStats), testutil.UnauthenticatedRequest(t, http.MethodGet, "/admin-stat", nil))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, "failed to build admin statistics", resp.Message)
	assert.Equal(t, "$group exceeded memory limit", resp.Detail)
}
