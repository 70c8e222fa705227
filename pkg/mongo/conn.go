package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ProductsCollection = "Economic_Items"
	CommentsCollection = "comments"
	UsersCollection    = "users"
	OrdersCollection   = "orders"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store owns the MongoDB client for the lifetime of the process. It is
// opened once at startup and handed to every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client and pings the deployment so a bad URI fails at
// startup rather than on the first request.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "create mongodb client")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongodb")
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
