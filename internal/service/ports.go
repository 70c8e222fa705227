package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
)

type ProductRepo interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) (bson.ObjectID, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, bool, error)
	SetProducts(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

type CommentRepo interface {
	ListByProduct(ctx context.Context, productID bson.ObjectID) ([]models.Comment, error)
	RatingSummary(ctx context.Context, productID bson.ObjectID) (models.RatingSummary, error)
	Get(ctx context.Context, productID, commentID bson.ObjectID) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) error
	Update(ctx context.Context, productID, commentID bson.ObjectID, set bson.M) error
	Delete(ctx context.Context, productID, commentID bson.ObjectID) error
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	UpdateByEmail(ctx context.Context, email string, set bson.M) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) (bson.ObjectID, error)
}

// ImageStore persists uploaded review and profile images.
type ImageStore interface {
	Save(dir string, up *images.Upload) (string, error)
}

// ImageCleaner deletes stored images in the background, best effort.
type ImageCleaner interface {
	Enqueue(ref string)
}

// Completer is the upstream text completion provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
