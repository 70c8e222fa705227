package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"ecocart.dev/ecocart/api/pkg/models"
)

var productListProjection = bson.D{
	{Key: "Name", Value: 1},
	{Key: "ImageLink", Value: 1},
	{Key: "Price", Value: 1},
	{Key: "Rating", Value: 1},
	{Key: "Category", Value: 1},
}

type ProductRepo struct {
	coll *mongo.Collection
}

func NewProductRepo(s *Store) *ProductRepo {
	return &ProductRepo{coll: s.Collection(ProductsCollection)}
}

// List returns every product in store order.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(productListProjection))
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) (bson.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return bson.ObjectID{}, errors.Wrap(err, "insert product")
	}
	return p.ID, nil
}

// Delete removes a product. It returns ErrNotFound when nothing matched.
func (r *ProductRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
