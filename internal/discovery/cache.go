// internal/discovery/cache.go
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"price-scout/internal/common/database"
	"price-scout/internal/models"
)

// Cache stores discovered marketplace lists keyed by "category|region".
// Entries expire; stale marketplace lists are merely refreshed, never wrong
// enough to invalidate eagerly.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.DataSource, bool)
	Set(ctx context.Context, key string, sources []models.DataSource)
}

// CacheKey builds the canonical cache key. An empty sourceType keys the
// merged all-types list.
func CacheKey(category, region string, sourceType SourceType) string {
	return fmt.Sprintf("discovery:%s|%s|%s", category, region, sourceType)
}

// ==========================
// Redis-backed cache
// ==========================

type RedisCache struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisCache(client *database.RedisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.DataSource, bool) {
	raw, err := c.client.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var sources []models.DataSource
	if err := json.Unmarshal([]byte(raw), &sources); err != nil {
		return nil, false
	}
	return sources, true
}

func (c *RedisCache) Set(ctx context.Context, key string, sources []models.DataSource) {
	raw, err := json.Marshal(sources)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl)
}

// ==========================
// In-process LRU cache
// ==========================

// LRUCache is the in-process fallback when Redis is not configured. Bounded
// size plus TTL expiry; never grows without limit.
type LRUCache struct {
	lru *expirable.LRU[string, []models.DataSource]
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		lru: expirable.NewLRU[string, []models.DataSource](size, nil, ttl),
	}
}

func (c *LRUCache) Get(ctx context.Context, key string) ([]models.DataSource, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache) Set(ctx context.Context, key string, sources []models.DataSource) {
	c.lru.Add(key, sources)
}
