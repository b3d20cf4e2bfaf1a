package dto

import (
	"github.com/hugh/plantnet/internal/api/validation"
	"github.com/hugh/plantnet/internal/database/models"
)

type CreatePlantRequest struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image"`
	Price       float64        `json:"price"`
	Quantity    int64          `json:"quantity"`
	Seller      *models.Seller `json:"seller,omitempty"`
}

func (r CreatePlantRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if validation.SanitizeString(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if validation.SanitizeString(r.Category) == "" {
		errors["category"] = "Category is required"
	}
	if !validation.IsValidImageURL(r.Image) {
		errors["image"] = "Image must be an http(s) URL"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}
	if r.Quantity < 0 {
		errors["quantity"] = "Quantity cannot be negative"
	}
	return errors
}

// ToPlant builds the stored document. The caller is recorded as seller
// unless the body names one with the same email.
func (r CreatePlantRequest) ToPlant(callerEmail string) models.Plant {
	seller := models.Seller{Email: callerEmail}
	if r.Seller != nil && r.Seller.Email == callerEmail {
		seller = *r.Seller
	}
	return models.Plant{
		Name:        validation.SanitizeString(r.Name),
		Category:    validation.SanitizeString(r.Category),
		Description: validation.TruncateString(validation.SanitizeString(r.Description), 2000),
		Image:       r.Image,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Seller:      seller,
	}
}

const QuantityIncrease = "increase"

// QuantityRequest is the stock adjustment body. Status "increase" adds,
// anything else subtracts.
type QuantityRequest struct {
	QuantityToUpdate int64  `json:"quantityToUpdate"`
	Status           string `json:"status"`
}

func (r QuantityRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.QuantityToUpdate <= 0 {
		errors["quantityToUpdate"] = "Quantity must be a positive number"
	}
	return errors
}

func (r QuantityRequest) Delta() int64 {
	if r.Status == QuantityIncrease {
		return r.QuantityToUpdate
	}
	return -r.QuantityToUpdate
}
