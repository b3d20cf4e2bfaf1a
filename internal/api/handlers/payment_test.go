package handlers_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/handlers"
	"github.com/hugh/plantnet/internal/testutil"
)

func TestPaymentHandler_CreateIntent(t *testing.T) {
	tc := testutil.NewTestContext(t)
	r := chi.NewRouter()
	r.Post("/create-payment-intent", handlers.NewPaymentHandler(tc.Store).CreateIntent)

	plant := tc.SeedPlant("fern", 19.99, 5)

	tests := []struct {
		name     string
		quantity int64
		status   int
		total    string
		cents    int64
	}{
		{"single", 1, http.StatusOK, "19.99", 1999},
		{"three", 3, http.StatusOK, "59.97", 5997},
		{"whole_stock", 5, http.StatusOK, "99.95", 9995},
		{"more_than_stock", 6, http.StatusConflict, "", 0},
		{"zero", 0, http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/create-payment-intent",
				dto.PaymentIntentRequest{PlantID: plant.ID.Hex(), Quantity: tt.quantity}))
			testutil.AssertStatus(t, rr, tt.status)
			if tt.status != http.StatusOK {
				return
			}

			var resp dto.PaymentIntentResponse
			testutil.ParseJSONResponse(t, rr, &resp)
			assert.Equal(t, tt.total, resp.Total)
			assert.Equal(t, tt.cents, resp.TotalCents)
			assert.Equal(t, "usd", resp.Currency)
		})
	}
}
