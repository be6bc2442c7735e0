// internal/fetch/shoppingapi.go
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"price-scout/internal/common/config"
	chttp "price-scout/internal/common/http"
	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// ShoppingAPIFetcher queries a shopping results aggregation API that
// authenticates via an api_key query parameter. Disabled without a key.
type ShoppingAPIFetcher struct {
	baseURL string
	apiKey  string
	client  *chttp.Client
	logger  logger.Logger
}

func NewShoppingAPIFetcher(cfg *config.Config, log logger.Logger) *ShoppingAPIFetcher {
	return &ShoppingAPIFetcher{
		baseURL: strings.TrimRight(cfg.APIs.ShoppingResults.BaseURL, "/"),
		apiKey:  cfg.APIs.ShoppingResults.APIKey,
		client:  chttp.NewClient(config.GetDuration(cfg.APIs.ShoppingResults.Timeout)),
		logger:  log.WithFields(map[string]interface{}{"fetcher": "shoppingapi"}),
	}
}

func (f *ShoppingAPIFetcher) Name() string { return "shoppingapi" }

func (f *ShoppingAPIFetcher) SourceType() models.VendorType { return models.VendorTypeOnlineMarketplace }

func (f *ShoppingAPIFetcher) Available() bool {
	return f.baseURL != "" && f.apiKey != ""
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (f *ShoppingAPIFetcher) SetHTTPClient(client *http.Client) {
	f.client = chttp.Wrap(client)
}

type shoppingAPIResponse struct {
	ShoppingResults []struct {
		Title     string  `json:"title"`
		Snippet   string  `json:"snippet"`
		Price     string  `json:"price"`
		Link      string  `json:"link"`
		Rating    float64 `json:"rating"`
		Thumbnail string  `json:"thumbnail"`
		Merchant  string  `json:"source"`
		Stock     string  `json:"stock"`
	} `json:"shopping_results"`
}

func (f *ShoppingAPIFetcher) Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error) {
	if !f.Available() {
		return nil, fmt.Errorf("shoppingapi: no credential configured")
	}

	q := url.Values{}
	q.Set("api_key", f.apiKey)
	q.Set("q", intent.CanonicalName)
	q.Set("currency", loc.CurrencyCode)
	if loc.City != "" {
		q.Set("location", loc.City)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("shoppingapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shoppingapi call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shoppingapi status %d", resp.StatusCode)
	}

	var decoded shoppingAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("shoppingapi decode: %w", err)
	}

	listings := make([]RawListing, 0, len(decoded.ShoppingResults))
	for _, r := range decoded.ShoppingResults {
		if r.Title == "" {
			continue
		}
		price, err := ParsePrice(r.Price)
		if err != nil {
			continue
		}
		listings = append(listings, RawListing{
			Name:         r.Title,
			Description:  r.Snippet,
			Price:        price,
			Source:       firstNonEmpty(r.Merchant, "Shopping Results API"),
			SourceURL:    r.Link,
			Rating:       r.Rating,
			Availability: parseAvailability(r.Stock),
			ImageURL:     r.Thumbnail,
		})
	}

	f.logger.Debug("shopping api fetched", map[string]interface{}{
		"listings": len(listings),
	})
	return listings, nil
}
