// internal/intent/ai.go
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"price-scout/internal/common/logger"
	"price-scout/internal/genai"
	"price-scout/internal/models"
)

const intentSystemPrompt = `You are a product search analyst. Given a shopping query, reply with ONLY a JSON object, no prose. Fields:
is_searchable (bool): whether the query describes a purchasable product.
product_name (string): canonical product name.
products (array of strings): 3-5 specific product variants.
brands (array of strings): relevant brand names.
price_range_min, price_range_max (numbers): expected price range in INR.
unit (string): selling unit, e.g. "per piece", "per kg".
descriptions (array of strings): short marketable descriptions per variant.
category (string): one-word product category.`

// intentSchema validates the model's reply before it is trusted.
const intentSchema = `{
	"type": "object",
	"required": ["is_searchable", "product_name"],
	"properties": {
		"is_searchable":   {"type": "boolean"},
		"product_name":    {"type": "string"},
		"products":        {"type": "array", "items": {"type": "string"}},
		"brands":          {"type": "array", "items": {"type": "string"}},
		"price_range_min": {"type": "number", "minimum": 0},
		"price_range_max": {"type": "number", "minimum": 0},
		"unit":            {"type": "string"},
		"descriptions":    {"type": "array", "items": {"type": "string"}},
		"category":        {"type": "string"}
	}
}`

// AIExtractor asks the configured AI backend to analyze the query.
type AIExtractor struct {
	client *genai.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewAIExtractor(client *genai.Client, log logger.Logger) (*AIExtractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(intentSchema))
	if err != nil {
		return nil, fmt.Errorf("compile intent schema: %w", err)
	}
	return &AIExtractor{
		client: client,
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"component": "intent-ai"}),
	}, nil
}

func (a *AIExtractor) Available() bool {
	return a.client.Available()
}

func (a *AIExtractor) Extract(ctx context.Context, query string, loc models.LocationContext) (models.ProductIntent, error) {
	prompt := fmt.Sprintf("Query: %q\nDetected location: %s %s", query, loc.City, loc.Country)

	reply, err := a.client.Complete(ctx, intentSystemPrompt, prompt)
	if err != nil {
		return models.ProductIntent{}, fmt.Errorf("intent completion: %w", err)
	}

	raw := genai.StripFences(reply)

	result, err := a.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return models.ProductIntent{}, fmt.Errorf("intent reply not JSON: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			issues = append(issues, e.String())
		}
		return models.ProductIntent{}, fmt.Errorf("intent reply failed validation: %s", strings.Join(issues, "; "))
	}

	var out models.ProductIntent
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return models.ProductIntent{}, fmt.Errorf("decode intent reply: %w", err)
	}

	if out.CanonicalName == "" {
		out.CanonicalName = SimplifyQuery(query)
	}

	a.logger.Debug("intent extracted", map[string]interface{}{
		"searchable": out.Searchable,
		"product":    out.CanonicalName,
		"category":   out.Category,
	})

	return out, nil
}
