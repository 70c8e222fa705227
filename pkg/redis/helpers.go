package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"ecocart.dev/ecocart/api/pkg/models"
)

const (
	productListKey = "products:all"
	productListTTL = 24 * time.Hour
)

// ProductCache keeps the serialized catalog listing so repeated page loads
// skip MongoDB. Writes to the catalog invalidate it.
type ProductCache struct {
	client *redisclient.Client
}

func NewProductCache(client *redisclient.Client) *ProductCache {
	return &ProductCache{client: client}
}

// GetProducts returns the cached listing. ok is false on a cache miss.
func (c *ProductCache) GetProducts(ctx context.Context) (products []models.Product, ok bool, err error) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if err == redisclient.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read product list from Redis: %w", err)
	}

	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}
	return products, true, nil
}

func (c *ProductCache) SetProducts(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	if err := c.client.Set(ctx, productListKey, raw, productListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product list in Redis: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("failed to remove product list from Redis cache: %w", err)
	}
	return nil
}
