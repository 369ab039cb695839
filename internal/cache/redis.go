package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restopos/internal/models"

	"github.com/redis/go-redis/v9"
)

const itemsKey = "restopos:items"

// RedisItemCache stores the catalog in Redis so several terminals share it.
type RedisItemCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// ConnectRedis opens a client and checks the server is reachable.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// NewRedisItemCache wraps rdb. Entries expire after ttl; zero keeps them.
func NewRedisItemCache(rdb *redis.Client, ttl time.Duration) *RedisItemCache {
	return &RedisItemCache{rdb: rdb, ttl: ttl}
}

func (c *RedisItemCache) GetAll(ctx context.Context) ([]models.Item, bool, error) {
	raw, err := c.rdb.Get(ctx, itemsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached items: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached items: %w", err)
	}
	return items, true, nil
}

func (c *RedisItemCache) SetAll(ctx context.Context, items []models.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	if err := c.rdb.Set(ctx, itemsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache items: %w", err)
	}
	return nil
}

func (c *RedisItemCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, itemsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached items: %w", err)
	}
	return nil
}
