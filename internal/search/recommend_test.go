// internal/search/recommend_test.go
package search

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-scout/internal/common/config"
	"price-scout/internal/common/logger"
	"price-scout/internal/genai"
)

func createTestRecommender(t *testing.T, reply string) *Recommender {
	cfg := &config.Config{}
	cfg.APIs.GenAI.BaseURL = "https://ai.test.local/v1"
	cfg.APIs.GenAI.APIKey = "test-key"
	cfg.APIs.GenAI.Model = "test-model"
	cfg.APIs.GenAI.Timeout = 5000

	client := genai.NewClient(cfg, logger.NewTestLogger(t))
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	client.SetHTTPClient(httpClient)

	httpmock.RegisterResponder("POST", "https://ai.test.local/v1/chat/completions",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": reply}},
			},
		}))

	return NewRecommender(client, logger.NewTestLogger(t))
}

func TestSimilarProducts(t *testing.T) {
	r := createTestRecommender(t, `["MacBook Air M3", "Dell XPS 13", "ThinkPad X1 Carbon"]`)

	resp := r.SimilarProducts(context.Background(), "macbook pro", 5)
	require.True(t, resp.Success)
	assert.True(t, resp.Available)
	assert.Equal(t, []string{"MacBook Air M3", "Dell XPS 13", "ThinkPad X1 Carbon"}, resp.Suggestions)
}

func TestSmartRecommendations_TruncatesToLimit(t *testing.T) {
	r := createTestRecommender(t, `["a", "b", "c", "d", "e"]`)

	resp := r.SmartRecommendations(context.Background(), "laptop", 2)
	assert.True(t, resp.Available)
	assert.Len(t, resp.Suggestions, 2)
}

func TestSuggestions_UnavailableWithoutBackend(t *testing.T) {
	r := NewRecommender(nil, logger.NewNoOpLogger())

	resp := r.SimilarProducts(context.Background(), "laptop", 5)
	assert.True(t, resp.Success)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Suggestions, "suggestions are never invented locally")
}

func TestSuggestions_MalformedReplyDegrades(t *testing.T) {
	r := createTestRecommender(t, `not json at all`)

	resp := r.SimilarProducts(context.Background(), "laptop", 5)
	assert.True(t, resp.Success)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Suggestions)
}
