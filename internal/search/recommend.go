// internal/search/recommend.go
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"price-scout/internal/common/logger"
	"price-scout/internal/genai"
	"price-scout/internal/models"
)

const similarSystemPrompt = `You are a shopping assistant. Given a product query, reply with ONLY a JSON array of strings naming similar or alternative products. No prose.`

const smartSystemPrompt = `You are a shopping assistant. Given a product query, reply with ONLY a JSON array of strings with smart purchase recommendations: better-value alternatives, common accessories, and timing advice. No prose.`

// Recommender produces AI suggestion lists. When no AI backend is configured
// the endpoints stay up and report Available=false with empty suggestions.
type Recommender struct {
	ai     *genai.Client
	logger logger.Logger
}

func NewRecommender(ai *genai.Client, log logger.Logger) *Recommender {
	return &Recommender{
		ai:     ai,
		logger: log.WithFields(map[string]interface{}{"component": "recommend"}),
	}
}

func (r *Recommender) SimilarProducts(ctx context.Context, query string, limit int) models.SuggestionResponse {
	return r.suggest(ctx, similarSystemPrompt, query, limit)
}

func (r *Recommender) SmartRecommendations(ctx context.Context, query string, limit int) models.SuggestionResponse {
	return r.suggest(ctx, smartSystemPrompt, query, limit)
}

func (r *Recommender) suggest(ctx context.Context, system, query string, limit int) models.SuggestionResponse {
	resp := models.SuggestionResponse{
		Success:     true,
		Query:       query,
		Suggestions: []string{},
	}

	if r.ai == nil || !r.ai.Available() {
		return resp
	}

	reply, err := r.ai.Complete(ctx, system, fmt.Sprintf("Query: %q\nReturn at most %d items.", query, limit))
	if err != nil {
		r.logger.WithError(err).Warn("suggestion completion failed", map[string]interface{}{
			"query": query,
		})
		return resp
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(genai.StripFences(reply)), &suggestions); err != nil {
		r.logger.WithError(err).Warn("suggestion reply unparseable", nil)
		return resp
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	resp.Available = true
	resp.Suggestions = suggestions
	return resp
}
