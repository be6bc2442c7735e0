// internal/intent/ai_test.go
package intent

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
	"price-scout/internal/models"
)

func createAITestClient(t *testing.T) *genai.Client {
	cfg := &config.Config{}
	cfg.APIs.GenAI.BaseURL = "https://ai.test.local/v1"
	cfg.APIs.GenAI.APIKey = "test-key"
	cfg.APIs.GenAI.Model = "test-model"
	cfg.APIs.GenAI.Timeout = 5000

	c := genai.NewClient(cfg, logger.NewTestLogger(t))
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	c.SetHTTPClient(httpClient)
	return c
}

func registerIntentReply(content string) {
	httpmock.RegisterResponder("POST", "https://ai.test.local/v1/chat/completions",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		}))
}

func TestAIExtract_ValidReply(t *testing.T) {
	client := createAITestClient(t)
	defer httpmock.DeactivateAndReset()

	registerIntentReply("```json\n" + `{
		"is_searchable": true,
		"product_name": "gaming laptop",
		"products": ["ASUS ROG Strix", "Lenovo Legion 5"],
		"brands": ["ASUS", "Lenovo"],
		"price_range_min": 60000,
		"price_range_max": 180000,
		"unit": "per piece",
		"descriptions": ["High refresh gaming laptop", "Value gaming laptop"],
		"category": "electronics"
	}` + "\n```")

	e, err := NewAIExtractor(client, logger.NewTestLogger(t))
	require.NoError(t, err)

	out, err := e.Extract(context.Background(), "gaming laptop in delhi", models.LocationContext{City: "Delhi", Country: "India"})
	require.NoError(t, err)
	assert.True(t, out.Searchable)
	assert.Equal(t, "gaming laptop", out.CanonicalName)
	assert.Equal(t, []string{"ASUS", "Lenovo"}, out.Brands)
	assert.Equal(t, 180000.0, out.PriceMax)
}

func TestAIExtract_UnsearchableReply(t *testing.T) {
	client := createAITestClient(t)
	defer httpmock.DeactivateAndReset()

	registerIntentReply(`{"is_searchable": false, "product_name": "weather in mumbai"}`)

	e, err := NewAIExtractor(client, logger.NewNoOpLogger())
	require.NoError(t, err)

	out, err := e.Extract(context.Background(), "weather in mumbai", models.LocationContext{})
	require.NoError(t, err)
	assert.False(t, out.Searchable)
}

func TestAIExtract_RejectsSchemaViolations(t *testing.T) {
	client := createAITestClient(t)
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name  string
		reply string
	}{
		{"missing required field", `{"product_name": "laptop"}`},
		{"wrong type", `{"is_searchable": "yes", "product_name": "laptop"}`},
		{"negative price", `{"is_searchable": true, "product_name": "laptop", "price_range_min": -5}`},
		{"not json", `the best laptops are...`},
	}

	e, err := NewAIExtractor(client, logger.NewNoOpLogger())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registerIntentReply(tt.reply)
			_, err := e.Extract(context.Background(), "laptop", models.LocationContext{})
			assert.Error(t, err)
		})
	}
}

func TestAIExtract_Availability(t *testing.T) {
	cfg := &config.Config{}
	cfg.APIs.GenAI.Model = "test-model"
	client := genai.NewClient(cfg, logger.NewNoOpLogger())

	e, err := NewAIExtractor(client, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.False(t, e.Available())
}
