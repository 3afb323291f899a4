package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/columbia-shop/columbia/backend/internal/models"
)

const productsKey = "columbia:products"

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// RedisCache caches the encoded product list.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Products returns the cached list. ok is false on a miss.
func (c *RedisCache) Products(ctx context.Context) (products []models.Product, ok bool, err error) {
	raw, err := c.rdb.Get(ctx, productsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("redis decode: %w", err)
	}
	return products, true, nil
}

func (c *RedisCache) SetProducts(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}
	return c.rdb.Set(ctx, productsKey, raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, productsKey).Err()
}
