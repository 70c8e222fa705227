package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order is an anonymous checkout record. Orders are append-only.
type Order struct {
	ID         bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	FullName   string        `json:"fullName" bson:"fullName"`
	Address    string        `json:"address" bson:"address"`
	City       string        `json:"city" bson:"city"`
	PostalCode string        `json:"postalCode" bson:"postalCode"`
	Cart       []CartLine    `json:"cart" bson:"cart"`
	Total      float64       `json:"total" bson:"total"`
	Timestamp  string        `json:"timestamp" bson:"timestamp"`
}

type CreateOrderRequest struct {
	FullName   string     `json:"fullName" validate:"required"`
	Address    string     `json:"address" validate:"required"`
	City       string     `json:"city" validate:"required"`
	PostalCode string     `json:"postalCode" validate:"required"`
	Cart       []CartLine `json:"cart" validate:"required,min=1,dive"`
	Total      float64    `json:"total" validate:"required"`
	Timestamp  string     `json:"timestamp" validate:"required"`
}

func (req *CreateOrderRequest) ToOrder() *Order {
	return &Order{
		ID:         bson.NewObjectID(),
		FullName:   req.FullName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Cart:       req.Cart,
		Total:      req.Total,
		Timestamp:  req.Timestamp,
	}
}
