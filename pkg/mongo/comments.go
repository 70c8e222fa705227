package mongo

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"ecocart.dev/ecocart/api/pkg/models"
)

type CommentRepo struct {
	coll *mongo.Collection
}

func NewCommentRepo(s *Store) *CommentRepo {
	return &CommentRepo{coll: s.Collection(CommentsCollection)}
}

func commentFilter(productID, commentID bson.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: commentID},
		{Key: "productId", Value: productID},
	}
}

// ListByProduct returns a product's comments, newest first.
func (r *CommentRepo) ListByProduct(ctx context.Context, productID bson.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "productId", Value: productID}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode comments")
	}
	return comments, nil
}

func (r *CommentRepo) Get(ctx context.Context, productID, commentID bson.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.coll.FindOne(ctx, commentFilter(productID, commentID)).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find comment")
	}
	return &comment, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return errors.Wrap(err, "insert comment")
	}
	return nil
}

// Update applies a $set to one comment. It returns ErrNotFound when the
// comment disappeared in the meantime.
func (r *CommentRepo) Update(ctx context.Context, productID, commentID bson.ObjectID, set bson.M) error {
	result, err := r.coll.UpdateOne(ctx, commentFilter(productID, commentID), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return errors.Wrap(err, "update comment")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, productID, commentID bson.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, commentFilter(productID, commentID))
	if err != nil {
		return errors.Wrap(err, "delete comment")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
