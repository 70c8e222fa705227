package mongo

import (
	"context"
	"log/slog"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Email is the natural key of an account.
	{
		CollectionName: UsersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},
	// Comments are always listed per product, newest first.
	{
		CollectionName: CommentsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "productId", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_product_comments"),
		},
	},
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "Category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
}

// EnsureIndexes creates the indexes the repositories rely on. Creating an
// index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, s *Store, log *slog.Logger) error {
	for _, idxConfig := range requiredIndexes {
		indexName, err := s.Collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			return errors.Wrapf(err, "create index on %s", idxConfig.CollectionName)
		}
		log.Debug("index ensured", slog.String("index", indexName), slog.String("collection", idxConfig.CollectionName))
	}
	return nil
}
