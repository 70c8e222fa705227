package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
	"ecocart.dev/ecocart/api/pkg/mongo"
)

type CatalogService struct {
	products ProductRepo
	cache    ProductCache
	log      *slog.Logger
}

// NewCatalogService wires the catalog. cache may be nil, in which case every
// listing goes to the store.
func NewCatalogService(products ProductRepo, cache ProductCache, log *slog.Logger) *CatalogService {
	return &CatalogService{products: products, cache: cache, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.GetProducts(ctx)
		if err != nil {
			s.log.Warn("product cache read failed", slog.Any("err", err))
		} else if ok {
			return products, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, global.NewInternalError("Failed to fetch products", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			s.log.Warn("product cache write failed", slog.Any("err", err))
		}
	}
	return products, nil
}

// AddProduct validates and stores a product with its image inlined as a data
// URI, and returns the new identifier.
func (s *CatalogService) AddProduct(ctx context.Context, req *models.CreateProductRequest) (bson.ObjectID, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validate(req, "Invalid product data"); err != nil {
		return bson.ObjectID{}, err
	}

	product := req.ToProduct(images.DataURI(req.MimeType, req.Image))
	id, err := s.products.Create(ctx, product)
	if err != nil {
		return bson.ObjectID{}, global.NewInternalError("Failed to add product", err)
	}

	s.invalidate(ctx)
	s.log.Info("product added", slog.String("id", id.Hex()), slog.String("name", product.Name))
	return id, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, rawID string) error {
	id, err := parseID("id", rawID, "Invalid product ID")
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			return global.NewNotFound("Product not found")
		}
		return global.NewInternalError("Failed to delete product", err)
	}

	s.invalidate(ctx)
	s.log.Info("product deleted", slog.String("id", id.Hex()))
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("product cache invalidation failed", slog.Any("err", err))
	}
}
