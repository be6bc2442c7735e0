// internal/intent/heuristic.go
package intent

import (
	"context"
	"fmt"
	"strings"

	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// productCategory is the keyword-driven fallback when no AI backend answers.
type productCategory struct {
	Keywords []string
	Brands   []string
	PriceMin float64 // INR
	PriceMax float64 // INR
	Unit     string
	Category string
}

var categoryTable = []productCategory{
	{
		Keywords: []string{"laptop", "notebook", "macbook"},
		Brands:   []string{"Dell", "HP", "Lenovo", "ASUS", "Acer"},
		PriceMin: 30000, PriceMax: 150000,
		Unit: "per piece", Category: "electronics",
	},
	{
		Keywords: []string{"phone", "smartphone", "mobile", "iphone"},
		Brands:   []string{"Samsung", "Apple", "Xiaomi", "OnePlus", "Vivo"},
		PriceMin: 10000, PriceMax: 120000,
		Unit: "per piece", Category: "electronics",
	},
	{
		Keywords: []string{"tv", "television"},
		Brands:   []string{"Samsung", "LG", "Sony", "TCL", "Mi"},
		PriceMin: 15000, PriceMax: 200000,
		Unit: "per piece", Category: "electronics",
	},
	{
		Keywords: []string{"headphone", "headphones", "earbuds", "earphones"},
		Brands:   []string{"Sony", "JBL", "boAt", "Bose", "Sennheiser"},
		PriceMin: 1000, PriceMax: 30000,
		Unit: "per piece", Category: "audio",
	},
	{
		Keywords: []string{"shoe", "shoes", "sneakers", "footwear"},
		Brands:   []string{"Nike", "Adidas", "Puma", "Reebok", "Bata"},
		PriceMin: 1500, PriceMax: 15000,
		Unit: "per pair", Category: "fashion",
	},
}

// HeuristicExtractor builds an intent from keyword tables. Always available.
type HeuristicExtractor struct {
	logger logger.Logger
}

func NewHeuristicExtractor(log logger.Logger) *HeuristicExtractor {
	return &HeuristicExtractor{
		logger: log.WithFields(map[string]interface{}{"component": "intent-heuristic"}),
	}
}

func (h *HeuristicExtractor) Available() bool {
	return true
}

func (h *HeuristicExtractor) Extract(ctx context.Context, query string, loc models.LocationContext) (models.ProductIntent, error) {
	simplified := SimplifyQuery(query)
	if simplified == "" {
		return models.ProductIntent{Searchable: false}, nil
	}

	q := strings.ToLower(query)
	for _, cat := range categoryTable {
		for _, kw := range cat.Keywords {
			if !containsWord(q, kw) {
				continue
			}

			variants := make([]string, 0, len(cat.Brands))
			descriptions := make([]string, 0, len(cat.Brands))
			for _, brand := range cat.Brands {
				variants = append(variants, fmt.Sprintf("%s %s", brand, titleWords(kw)))
				descriptions = append(descriptions, fmt.Sprintf("Popular %s model from %s", kw, brand))
			}

			return models.ProductIntent{
				Searchable:    true,
				CanonicalName: simplified,
				Variants:      variants,
				Brands:        cat.Brands,
				PriceMin:      cat.PriceMin,
				PriceMax:      cat.PriceMax,
				Unit:          cat.Unit,
				Descriptions:  descriptions,
				Category:      cat.Category,
			}, nil
		}
	}

	// Unknown category: still searchable, generic attributes.
	return models.ProductIntent{
		Searchable:    true,
		CanonicalName: simplified,
		Variants:      []string{simplified},
		PriceMin:      500,
		PriceMax:      50000,
		Unit:          "per piece",
		Category:      "general",
	}, nil
}

func containsWord(haystack, word string) bool {
	for _, f := range strings.Fields(haystack) {
		if strings.Trim(f, ".,!?") == word {
			return true
		}
	}
	return false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
