package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/models"
)

// RatingSummary averages the ratings of a product's comments. A product
// without comments yields a zero summary.
func (r *CommentRepo) RatingSummary(ctx context.Context, productID bson.ObjectID) (models.RatingSummary, error) {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "productId", Value: productID}}}},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 0},
				{Key: "average", Value: bson.D{{Key: "$round", Value: bson.A{"$average", 2}}}},
				{Key: "count", Value: 1},
			}},
		},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, errors.Wrap(err, "aggregate comment ratings")
	}
	defer cursor.Close(ctx)

	var summaries []models.RatingSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return models.RatingSummary{}, errors.Wrap(err, "decode rating summary")
	}
	if len(summaries) == 0 {
		return models.RatingSummary{}, nil
	}
	return summaries[0], nil
}
