// internal/discovery/service.go
package discovery

import (
	"context"
	"encoding/json"
	"fmt"

	"price-scout/internal/common/logger"
	"price-scout/internal/genai"
	"price-scout/internal/location"
	"price-scout/internal/models"
)

const discoverySystemPrompt = `You are a sourcing specialist. Given a product category and region, reply with ONLY a JSON array of marketplaces worth checking. Each element: {"name": string, "url": string, "type": string, "description": string}. 3 to 8 entries, real marketplaces only.`

// Service resolves the marketplace list for a category and region, consulting
// the cache first and the AI backend when available. The static catalog
// guarantees a non-empty answer.
type Service struct {
	cache  Cache
	ai     *genai.Client
	logger logger.Logger
}

func NewService(cache Cache, ai *genai.Client, log logger.Logger) *Service {
	return &Service{
		cache:  cache,
		ai:     ai,
		logger: log.WithFields(map[string]interface{}{"component": "discovery"}),
	}
}

// Discover returns the marketplace list for a category and region. An empty
// sourceType merges all source-type buckets; a specific one narrows the
// answer to that bucket.
func (s *Service) Discover(ctx context.Context, category string, region location.Region, sourceType SourceType) []models.DataSource {
	key := CacheKey(category, string(region), sourceType)

	if cached, ok := s.cache.Get(ctx, key); ok && len(cached) > 0 {
		s.logger.Debug("discovery cache hit", map[string]interface{}{"key": key})
		return cached
	}

	sources := s.discoverViaAI(ctx, category, region, sourceType)
	if len(sources) == 0 {
		sources = CatalogSources(region, sourceType)
	}

	s.cache.Set(ctx, key, sources)
	return sources
}

func (s *Service) discoverViaAI(ctx context.Context, category string, region location.Region, sourceType SourceType) []models.DataSource {
	if s.ai == nil || !s.ai.Available() {
		return nil
	}

	prompt := fmt.Sprintf("Product category: %s\nRegion: %s", category, region)
	if sourceType != "" {
		prompt += fmt.Sprintf("\nRestrict to source type: %s", sourceType)
	}
	reply, err := s.ai.Complete(ctx, discoverySystemPrompt, prompt)
	if err != nil {
		s.logger.WithError(err).Warn("AI discovery failed, using static catalog", map[string]interface{}{
			"category": category,
			"region":   string(region),
		})
		return nil
	}

	var sources []models.DataSource
	if err := json.Unmarshal([]byte(genai.StripFences(reply)), &sources); err != nil {
		s.logger.WithError(err).Warn("AI discovery reply unparseable", nil)
		return nil
	}

	// Drop incomplete entries rather than rejecting the whole reply.
	valid := sources[:0]
	for _, src := range sources {
		if src.Name != "" && src.URL != "" {
			valid = append(valid, src)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	s.logger.Info("marketplaces discovered via AI", map[string]interface{}{
		"category": category,
		"region":   string(region),
		"count":    len(valid),
	})
	return valid
}
