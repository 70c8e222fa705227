package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is a customer review attached to a product.
type Comment struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductID bson.ObjectID `json:"productId" bson:"productId"`
	Body      string        `json:"comment" bson:"comment"`
	Rating    int           `json:"rating" bson:"rating"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	ImageURL  *string       `json:"imageUrl" bson:"imageUrl"`
}

// CommentRequest is the validated input for adding or editing a comment.
type CommentRequest struct {
	Body   string `json:"comment" validate:"required"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

// NewCommentRequest trims the body and parses the rating leniently: anything
// that is not an integer becomes 0 and fails the range check.
func NewCommentRequest(body, rating string) CommentRequest {
	n, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		n = 0
	}
	return CommentRequest{Body: strings.TrimSpace(body), Rating: n}
}

// RatingSummary aggregates the ratings of a product's comments.
type RatingSummary struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// HasImage reports whether an uploaded image belongs to the comment.
func (c *Comment) HasImage() bool {
	return c.ImageURL != nil && *c.ImageURL != ""
}
