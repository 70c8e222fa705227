package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultProductRating is stored when a product is added without a rating.
const DefaultProductRating = 5.0

// Product represents an item in the catalog. Field names match the stored
// documents and the JSON the storefront script reads.
type Product struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string        `json:"Name" bson:"Name"`
	Category  string        `json:"Category" bson:"Category"`
	Price     float64       `json:"Price" bson:"Price"`
	Rating    float64       `json:"Rating" bson:"Rating"`
	ImageLink string        `json:"ImageLink" bson:"ImageLink"`
}

// CreateProductRequest is the validated input for adding a product.
type CreateProductRequest struct {
	Name     string   `json:"Name" validate:"required"`
	Category string   `json:"Category" validate:"required"`
	Price    *float64 `json:"Price" validate:"required,gte=0"`
	Rating   *float64 `json:"Rating" validate:"omitempty,gte=0,lte=5"`
	Image    []byte   `json:"image" validate:"required,min=1"`
	MimeType string   `json:"-"`
}

// ToProduct builds the document to insert. imageLink is the already encoded
// data URI.
func (req *CreateProductRequest) ToProduct(imageLink string) *Product {
	rating := DefaultProductRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	return &Product{
		ID:        bson.NewObjectID(),
		Name:      req.Name,
		Category:  req.Category,
		Price:     *req.Price,
		Rating:    rating,
		ImageLink: imageLink,
	}
}

// ParseOptionalFloat parses a form value. Blank input yields nil; NaN and
// infinities are rejected.
func ParseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a finite number", raw)
	}
	return &v, nil
}
