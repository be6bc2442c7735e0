// internal/intent/extractor.go

// Package intent turns free query text into a structured ProductIntent.
// Extraction prefers the AI backend and silently falls back to keyword
// heuristics when no backend is configured or the call fails.
package intent

import (
	"context"

	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// Extractor produces a ProductIntent from raw query text.
type Extractor interface {
	Extract(ctx context.Context, query string, loc models.LocationContext) (models.ProductIntent, error)
	Available() bool
}

// FallbackExtractor chains a primary extractor with a fallback. The fallback
// also handles primary errors so a flaky AI backend never fails a search.
type FallbackExtractor struct {
	primary  Extractor
	fallback Extractor
	logger   logger.Logger
}

func NewFallbackExtractor(primary, fallback Extractor, log logger.Logger) *FallbackExtractor {
	return &FallbackExtractor{
		primary:  primary,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "intent"}),
	}
}

func (f *FallbackExtractor) Available() bool {
	return true
}

func (f *FallbackExtractor) Extract(ctx context.Context, query string, loc models.LocationContext) (models.ProductIntent, error) {
	if f.primary != nil && f.primary.Available() {
		out, err := f.primary.Extract(ctx, query, loc)
		if err == nil {
			return out, nil
		}
		f.logger.WithError(err).Warn("primary intent extraction failed, using fallback", map[string]interface{}{
			"query": query,
		})
	}
	return f.fallback.Extract(ctx, query, loc)
}
