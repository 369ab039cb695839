// Package cache keeps a local copy of the catalog so the sales screen can be
// served without a round trip to the database.
package cache

import (
	"context"
	"time"

	"restopos/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ItemCache stores the full item list.
type ItemCache interface {
	// GetAll returns the cached items and whether the cache was populated.
	GetAll(ctx context.Context) ([]models.Item, bool, error)
	SetAll(ctx context.Context, items []models.Item) error
	Invalidate(ctx context.Context) error
}

// catalogKey is the single entry of MemoryItemCache.
const catalogKey = "catalog"

// MemoryItemCache is an in-process ItemCache.
type MemoryItemCache struct {
	lru *expirable.LRU[string, []models.Item]
}

// NewMemoryItemCache creates a cache whose entries expire after ttl. A zero
// ttl never expires.
func NewMemoryItemCache(ttl time.Duration) *MemoryItemCache {
	return &MemoryItemCache{lru: expirable.NewLRU[string, []models.Item](1, nil, ttl)}
}

func (c *MemoryItemCache) GetAll(ctx context.Context) ([]models.Item, bool, error) {
	items, ok := c.lru.Get(catalogKey)
	if !ok {
		return nil, false, nil
	}
	return append([]models.Item(nil), items...), true, nil
}

func (c *MemoryItemCache) SetAll(ctx context.Context, items []models.Item) error {
	c.lru.Add(catalogKey, append([]models.Item{}, items...))
	return nil
}

func (c *MemoryItemCache) Invalidate(ctx context.Context) error {
	c.lru.Purge()
	return nil
}
