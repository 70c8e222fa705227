package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"ecocart.dev/ecocart/api/pkg/models"
)

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{coll: s.Collection(UsersCollection)}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

// Create inserts a user. A second account for the same email trips the
// unique index and comes back as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepo) UpdateByEmail(ctx context.Context, email string, set bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "email", Value: email}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
