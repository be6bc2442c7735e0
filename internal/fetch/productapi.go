// internal/fetch/productapi.go
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

// ProductAPIFetcher queries a JSON product catalog API. Disabled when no API
// key is configured.
type ProductAPIFetcher struct {
	baseURL string
	apiKey  string
	client  *chttp.Client
	logger  logger.Logger
}

func NewProductAPIFetcher(cfg *config.Config, log logger.Logger) *ProductAPIFetcher {
	return &ProductAPIFetcher{
		baseURL: strings.TrimRight(cfg.APIs.ProductSearch.BaseURL, "/"),
		apiKey:  cfg.APIs.ProductSearch.APIKey,
		client:  chttp.NewClient(config.GetDuration(cfg.APIs.ProductSearch.Timeout)),
		logger:  log.WithFields(map[string]interface{}{"fetcher": "productapi"}),
	}
}

func (f *ProductAPIFetcher) Name() string { return "productapi" }

func (f *ProductAPIFetcher) SourceType() models.VendorType { return models.VendorTypeGlobalSupplier }

func (f *ProductAPIFetcher) Available() bool {
	return f.baseURL != "" && f.apiKey != ""
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (f *ProductAPIFetcher) SetHTTPClient(client *http.Client) {
	f.client = chttp.Wrap(client)
}

type productAPIResponse struct {
	Products []struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		Unit         string  `json:"unit"`
		URL          string  `json:"url"`
		Rating       float64 `json:"rating"`
		Availability string  `json:"availability"`
		ImageURL     string  `json:"image_url"`
		Brand        string  `json:"brand"`
		Supplier     struct {
			Name    string `json:"name"`
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"supplier"`
	} `json:"products"`
}

func (f *ProductAPIFetcher) Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error) {
	if !f.Available() {
		return nil, fmt.Errorf("productapi: no credential configured")
	}

	q := url.Values{}
	q.Set("query", intent.CanonicalName)
	q.Set("currency", loc.CurrencyCode)
	if loc.Country != "" {
		q.Set("country", loc.Country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/v1/products?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("productapi request: %w", err)
	}
	req.Header.Set("X-API-Key", f.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("productapi call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("productapi status %d", resp.StatusCode)
	}

	var decoded productAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("productapi decode: %w", err)
	}

	listings := make([]RawListing, 0, len(decoded.Products))
	for _, p := range decoded.Products {
		if p.Name == "" || p.Price <= 0 {
			continue
		}
		listing := RawListing{
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			Unit:         p.Unit,
			Source:       "Product Catalog API",
			SourceURL:    p.URL,
			Rating:       p.Rating,
			Availability: parseAvailability(p.Availability),
			ImageURL:     p.ImageURL,
			Brand:        p.Brand,
		}
		if p.Supplier.Name != "" {
			// Real supplier record; contact details are still unknown.
			listing.Vendor = &models.VendorInfo{
				Name:               p.Supplier.Name,
				Email:              models.FieldNotAvailable,
				Phone:              models.FieldNotAvailable,
				Address:            models.FieldNotAvailable,
				City:               p.Supplier.City,
				Country:            p.Supplier.Country,
				Type:               models.VendorTypeGlobalSupplier,
				ResponseTime:       models.FieldNotAvailable,
				VerificationStatus: "API listed",
				BusinessHours:      models.FieldNotAvailable,
				Provenance:         models.VendorVerified,
			}
		}
		listings = append(listings, listing)
	}

	f.logger.Debug("product api fetched", map[string]interface{}{
		"listings": len(listings),
	})
	return listings, nil
}
