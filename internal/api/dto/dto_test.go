package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hugh/plantnet/internal/database/models"
)

func TestQuantityRequest_Delta(t *testing.T) {
	tests := []struct {
		name   string
		req    QuantityRequest
		expect int64
	}{
		{"increase", QuantityRequest{QuantityToUpdate: 3, Status: "increase"}, 3},
		{"decrease", QuantityRequest{QuantityToUpdate: 3, Status: "decrease"}, -3},
		{"missing_status_decreases", QuantityRequest{QuantityToUpdate: 2}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.req.Delta())
		})
	}
}

func TestQuantityRequest_Validate(t *testing.T) {
	assert.Empty(t, QuantityRequest{QuantityToUpdate: 1}.Validate())
	assert.Contains(t, QuantityRequest{QuantityToUpdate: 0}.Validate(), "quantityToUpdate")
	assert.Contains(t, QuantityRequest{QuantityToUpdate: -4}.Validate(), "quantityToUpdate")
}

func TestTokenRequest_Validate(t *testing.T) {
	assert.Empty(t, TokenRequest{Email: "a@b.io"}.Validate())
	assert.Equal(t, "Email is required", TokenRequest{}.Validate()["email"])
	assert.Equal(t, "Invalid email format", TokenRequest{Email: "nope"}.Validate()["email"])
}

func TestApproveRoleRequest_Validate(t *testing.T) {
	assert.Empty(t, ApproveRoleRequest{Role: "seller"}.Validate())
	assert.Contains(t, ApproveRoleRequest{Role: "owner"}.Validate(), "role")
	assert.Contains(t, ApproveRoleRequest{}.Validate(), "role")
}

func TestCreatePlantRequest(t *testing.T) {
	req := CreatePlantRequest{Name: " Fern ", Category: "Indoor", Price: 12.5, Quantity: 4}
	assert.Empty(t, req.Validate())

	plant := req.ToPlant("seller@x.io")
	assert.Equal(t, "Fern", plant.Name)
	assert.Equal(t, "seller@x.io", plant.Seller.Email)

	// a body naming someone else cannot reassign ownership
	req.Seller = &models.Seller{Email: "other@x.io", Name: "Other"}
	assert.Equal(t, "seller@x.io", req.ToPlant("seller@x.io").Seller.Email)

	bad := CreatePlantRequest{Price: -1, Quantity: -1, Image: "ftp://x"}.Validate()
	assert.Len(t, bad, 5)
}

func TestCreateOrderRequest(t *testing.T) {
	req := CreateOrderRequest{PlantID: "65f1c2a9e4b0a1b2c3d4e5f6", Quantity: 1, Price: 10}
	assert.Empty(t, req.Validate())

	order := req.ToOrder("buyer@x.io")
	assert.Equal(t, "buyer@x.io", order.Customer.Email)
	assert.Equal(t, models.OrderStatus(""), order.Status)

	bad := CreateOrderRequest{PlantID: "x", Status: "Lost"}.Validate()
	assert.Contains(t, bad, "plantId")
	assert.Contains(t, bad, "quantity")
	assert.Contains(t, bad, "status")
}

func TestOrderStatusRequest_Validate(t *testing.T) {
	assert.Empty(t, OrderStatusRequest{Status: models.OrderStatusInProgress}.Validate())
	assert.Contains(t, OrderStatusRequest{}.Validate(), "status")
	assert.Contains(t, OrderStatusRequest{Status: "shipped"}.Validate(), "status")
}
