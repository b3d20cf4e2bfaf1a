package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Seller is the owning user, denormalized onto each plant.
type Seller struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image" json:"image"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int64              `bson:"quantity" json:"quantity"`
	Seller      Seller             `bson:"seller" json:"seller"`
}
