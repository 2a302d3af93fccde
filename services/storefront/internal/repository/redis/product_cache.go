package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/services/storefront/internal/domain"
)

const keyPrefix = "storefront:product:"

// ProductCache implements repository.ProductCache using Redis.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a Redis-backed product cache. A zero ttl stores
// entries without expiry.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func productKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// Get retrieves a product by ID from Redis.
func (c *ProductCache) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("cached product", strconv.FormatInt(productID, 10))
		}
		return nil, fmt.Errorf("redis get product: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}

	return &product, nil
}

// Set stores the product with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set product: %w", err)
	}

	return nil
}

// Invalidate removes the product from Redis.
func (c *ProductCache) Invalidate(ctx context.Context, productID int64) error {
	if err := c.client.Del(ctx, productKey(productID)).Err(); err != nil {
		return fmt.Errorf("redis del product: %w", err)
	}

	return nil
}
