package dto

import (
	"github.com/hugh/plantnet/internal/api/validation"
	"github.com/hugh/plantnet/internal/database/models"
)

type CreateOrderRequest struct {
	Customer models.Customer    `json:"customer"`
	PlantID  string             `json:"plantId"`
	Price    float64            `json:"price"`
	Quantity int64              `json:"quantity"`
	Seller   string             `json:"seller"`
	Address  string             `json:"address,omitempty"`
	Status   models.OrderStatus `json:"status,omitempty"`
}

func (r CreateOrderRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !validation.IsValidObjectID(r.PlantID) {
		errors["plantId"] = "Invalid plant ID format"
	}
	if r.Quantity <= 0 {
		errors["quantity"] = "Quantity must be a positive number"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}
	if r.Seller != "" && !validation.IsValidEmail(r.Seller) {
		errors["seller"] = "Invalid seller email"
	}
	if r.Status != "" && !knownStatus(r.Status) {
		errors["status"] = "Unknown order status"
	}
	return errors
}

// ToOrder fills the customer email from the session when the body leaves it
// out.
func (r CreateOrderRequest) ToOrder(callerEmail string) models.Order {
	customer := r.Customer
	if customer.Email == "" {
		customer.Email = callerEmail
	}
	return models.Order{
		Customer: customer,
		PlantID:  r.PlantID,
		Price:    r.Price,
		Quantity: r.Quantity,
		Seller:   r.Seller,
		Address:  validation.TruncateString(validation.SanitizeString(r.Address), 500),
		Status:   r.Status,
	}
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (r OrderStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Status == "" {
		errors["status"] = "Status is required"
	} else if !knownStatus(r.Status) {
		errors["status"] = "Unknown order status"
	}
	return errors
}

func knownStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusInProgress, models.OrderStatusDelivered:
		return true
	}
	return false
}
