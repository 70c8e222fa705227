package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"ecocart.dev/ecocart/api/pkg/models"
)

// OrderRepo only appends; orders are never updated or deleted.
type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(s *Store) *OrderRepo {
	return &OrderRepo{coll: s.Collection(OrdersCollection)}
}

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) (bson.ObjectID, error) {
	if o.ID.IsZero() {
		o.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return bson.ObjectID{}, errors.Wrap(err, "insert order")
	}
	return o.ID, nil
}
