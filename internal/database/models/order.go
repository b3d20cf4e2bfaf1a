package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// Terminal orders can no longer be cancelled.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

type Customer struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer Customer           `bson:"customer" json:"customer"`
	PlantID  string             `bson:"plantId" json:"plantId"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int64              `bson:"quantity" json:"quantity"`
	Seller   string             `bson:"seller" json:"seller"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Status   OrderStatus        `bson:"status" json:"status"`
}

// CreatedAt comes from the ObjectID; orders carry no separate timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.ID.Timestamp()
}

// OrderView is an order joined with the plant it references.
type OrderView struct {
	Order    `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Image    string `bson:"image" json:"image"`
	Category string `bson:"category" json:"category"`
}

// ChartPoint is one day of order activity.
type ChartPoint struct {
	Date     string  `bson:"date" json:"date"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
	Order    int64   `bson:"order" json:"order"`
}

type AdminStats struct {
	TotalUser    int64        `json:"totalUser"`
	TotalPlants  int64        `json:"totalPlants"`
	TotalRevenue float64      `json:"totalRevenue"`
	TotalOrder   int64        `json:"totalOrder"`
	ChartData    []ChartPoint `json:"chartData"`
}
