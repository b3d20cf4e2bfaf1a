package handlers

import (
	"net/http"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/database"
	"github.com/shopspring/decimal"
)

const paymentCurrency = "usd"

// PaymentHandler prices a checkout. It never talks to a payment provider.
type PaymentHandler struct {
	plants PlantStore
}

func NewPaymentHandler(plants PlantStore) *PaymentHandler {
	return &PaymentHandler{plants: plants}
}

// CreateIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentIntentRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := database.ParseID(req.PlantID)
	if err != nil {
		response.Error(w, err)
		return
	}

	plant, err := h.plants.FindPlant(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if req.Quantity > plant.Quantity {
		response.Error(w, database.ErrInsufficientStock)
		return
	}

	response.JSON(w, http.StatusOK, quote(plant.Price, req.Quantity))
}

func quote(price float64, quantity int64) dto.PaymentIntentResponse {
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity)).Round(2)
	return dto.PaymentIntentResponse{
		Total:      total.StringFixed(2),
		TotalCents: total.Shift(2).IntPart(),
		Currency:   paymentCurrency,
	}
}
