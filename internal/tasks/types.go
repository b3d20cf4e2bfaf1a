package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeOrderPlaced   = "notify:order_placed"
	TypeRoleRequested = "notify:role_requested"
)

// OrderPlacedPayload is enough to write to both sides of a sale.
type OrderPlacedPayload struct {
	OrderID       string  `json:"order_id"`
	PlantID       string  `json:"plant_id"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name,omitempty"`
	SellerEmail   string  `json:"seller_email,omitempty"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
}

func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOrderPlaced, data, asynq.MaxRetry(5)), nil
}

type RoleRequestedPayload struct {
	Email string `json:"email"`
}

func NewRoleRequestedTask(payload RoleRequestedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRoleRequested, data, asynq.MaxRetry(3), asynq.Queue("low")), nil
}
