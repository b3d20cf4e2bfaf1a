package dto

import "github.com/hugh/plantnet/internal/api/validation"

type PaymentIntentRequest struct {
	PlantID  string `json:"plantId"`
	Quantity int64  `json:"quantity"`
}

func (r PaymentIntentRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !validation.IsValidObjectID(r.PlantID) {
		errors["plantId"] = "Invalid plant ID format"
	}
	if r.Quantity <= 0 {
		errors["quantity"] = "Quantity must be a positive number"
	}
	return errors
}

// PaymentIntentResponse carries the amount a payment provider would be asked
// to charge. Total is a decimal string so no precision is lost on the wire.
type PaymentIntentResponse struct {
	Total      string `json:"total"`
	TotalCents int64  `json:"totalCents"`
	Currency   string `json:"currency"`
}
