// internal/discovery/service_test.go
package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-scout/internal/common/database"
	"price-scout/internal/common/logger"
	"price-scout/internal/location"
	"price-scout/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func createMiniredisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewRedisCache(client, ttl), mr
}

// ==========================
// Catalog
// ==========================

func TestCatalogSources(t *testing.T) {
	tests := []struct {
		name     string
		region   location.Region
		expected string
	}{
		{"india has indiamart", location.RegionIndia, "IndiaMART"},
		{"usa has ebay", location.RegionUSA, "eBay"},
		{"uk has argos", location.RegionUK, "Argos"},
		{"uae has noon", location.RegionUAE, "Noon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := CatalogSources(tt.region, "")
			require.NotEmpty(t, sources)
			names := make([]string, 0, len(sources))
			for _, s := range sources {
				names = append(names, s.Name)
			}
			assert.Contains(t, names, tt.expected)
		})
	}
}

func TestCatalogSources_NarrowedToOneSourceType(t *testing.T) {
	sources := CatalogSources(location.RegionIndia, SourceOnlineMarketplaces)
	require.NotEmpty(t, sources)

	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Flipkart")
	assert.Contains(t, names, "Amazon India")
	assert.NotContains(t, names, "IndiaMART", "B2B suppliers belong to a different bucket")
	assert.NotContains(t, names, "JioMart", "local retail belongs to a different bucket")
}

func TestCatalogSources_UnknownRegionFallsBackToDefault(t *testing.T) {
	sources := CatalogSources(location.RegionJapan, "")
	require.NotEmpty(t, sources)

	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Alibaba")
	assert.Contains(t, names, "AliExpress")
}

// ==========================
// Caches
// ==========================

func TestRedisCache_RoundTrip(t *testing.T) {
	cache, _ := createMiniredisCache(t, time.Hour)
	ctx := context.Background()

	key := CacheKey("electronics", "india", "")
	sources := []models.DataSource{{Name: "Flipkart", URL: "https://www.flipkart.com", Type: "online marketplace"}}

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)

	cache.Set(ctx, key, sources)
	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, sources, got)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := createMiniredisCache(t, time.Minute)
	ctx := context.Background()

	key := CacheKey("fashion", "uk", "")
	cache.Set(ctx, key, []models.DataSource{{Name: "Argos", URL: "https://www.argos.co.uk"}})

	mr.FastForward(2 * time.Minute)
	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestRedisCache_BackendErrorIsAMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCache(&database.RedisClient{Client: db}, time.Hour)
	ctx := context.Background()

	key := CacheKey("electronics", "india", "")
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_CorruptEntryIsAMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCache(&database.RedisClient{Client: db}, time.Hour)
	ctx := context.Background()

	key := CacheKey("electronics", "india", "")
	mock.ExpectGet(key).SetVal("{truncated")

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestLRUCache_RoundTrip(t *testing.T) {
	cache := NewLRUCache(8, time.Hour)
	ctx := context.Background()

	key := CacheKey("audio", "usa", "")
	sources := []models.DataSource{{Name: "Amazon", URL: "https://www.amazon.com"}}

	cache.Set(ctx, key, sources)
	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, sources, got)
}

func TestLRUCache_EvictsAtCapacity(t *testing.T) {
	cache := NewLRUCache(2, time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "a", []models.DataSource{{Name: "A"}})
	cache.Set(ctx, "b", []models.DataSource{{Name: "B"}})
	cache.Set(ctx, "c", []models.DataSource{{Name: "C"}})

	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = cache.Get(ctx, "c")
	assert.True(t, ok)
}

// ==========================
// Service
// ==========================

func TestDiscover_StaticFallbackWithoutAI(t *testing.T) {
	svc := NewService(NewLRUCache(8, time.Hour), nil, logger.NewTestLogger(t))

	sources := svc.Discover(context.Background(), "electronics", location.RegionIndia, "")
	require.NotEmpty(t, sources)

	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Flipkart")
}

func TestDiscover_SourceTypeNarrowsAndKeysSeparately(t *testing.T) {
	cache := NewLRUCache(8, time.Hour)
	svc := NewService(cache, nil, logger.NewTestLogger(t))
	ctx := context.Background()

	narrowed := svc.Discover(ctx, "electronics", location.RegionIndia, SourceOnlineMarketplaces)
	require.NotEmpty(t, narrowed)
	for _, s := range narrowed {
		assert.Equal(t, "online marketplace", s.Type)
	}

	merged := svc.Discover(ctx, "electronics", location.RegionIndia, "")
	assert.Greater(t, len(merged), len(narrowed))

	_, ok := cache.Get(ctx, CacheKey("electronics", "india", SourceOnlineMarketplaces))
	assert.True(t, ok)
	_, ok = cache.Get(ctx, CacheKey("electronics", "india", ""))
	assert.True(t, ok)
}

func TestDiscover_CachesResult(t *testing.T) {
	cache := NewLRUCache(8, time.Hour)
	svc := NewService(cache, nil, logger.NewTestLogger(t))
	ctx := context.Background()

	first := svc.Discover(ctx, "fashion", location.RegionUSA, "")

	cached, ok := cache.Get(ctx, CacheKey("fashion", "usa", ""))
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second := svc.Discover(ctx, "fashion", location.RegionUSA, "")
	assert.Equal(t, first, second)
}

func TestDiscover_UsesRedisCacheAcrossInstances(t *testing.T) {
	cache, _ := createMiniredisCache(t, time.Hour)
	ctx := context.Background()

	svc1 := NewService(cache, nil, logger.NewNoOpLogger())
	first := svc1.Discover(ctx, "audio", location.RegionUK, "")

	svc2 := NewService(cache, nil, logger.NewNoOpLogger())
	second := svc2.Discover(ctx, "audio", location.RegionUK, "")

	assert.Equal(t, first, second)
}
