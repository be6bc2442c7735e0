// internal/fetch/localstores.go
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
	"price-scout/internal/location"
	"price-scout/internal/models"
)

// LocalStoresFetcher finds physical shops near the query's city through open
// map data. The free providers are flaky, so endpoints are tried in order and
// the first successful one wins. Only runs when the query resolved to a known
// city.
type LocalStoresFetcher struct {
	endpoints []string
	radiusM   int
	client    *chttp.Client
	logger    logger.Logger
}

func NewLocalStoresFetcher(cfg *config.Config, log logger.Logger) *LocalStoresFetcher {
	return &LocalStoresFetcher{
		endpoints: cfg.APIs.MapData.Endpoints,
		radiusM:   cfg.APIs.MapData.RadiusM,
		client:    chttp.NewClient(config.GetDuration(cfg.APIs.MapData.Timeout)),
		logger:    log.WithFields(map[string]interface{}{"fetcher": "localstores"}),
	}
}

func (f *LocalStoresFetcher) Name() string { return "localstores" }

func (f *LocalStoresFetcher) SourceType() models.VendorType { return models.VendorTypeLocalStore }

func (f *LocalStoresFetcher) Available() bool {
	return len(f.endpoints) > 0
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (f *LocalStoresFetcher) SetHTTPClient(client *http.Client) {
	f.client = chttp.Wrap(client)
}

type mapDataResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (f *LocalStoresFetcher) Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error) {
	if loc.City == "" {
		return nil, nil
	}

	lat, lon, ok := location.Coordinates(strings.ToLower(loc.City))
	if !ok {
		return nil, nil
	}

	var lastErr error
	for _, endpoint := range f.endpoints {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		decoded, err := f.queryEndpoint(ctx, endpoint, lat, lon)
		if err != nil {
			lastErr = err
			f.logger.WithError(err).Warn("map data endpoint failed, trying next", map[string]interface{}{
				"endpoint": endpoint,
			})
			continue
		}
		return f.toListings(decoded, intent, loc), nil
	}

	return nil, fmt.Errorf("all map data endpoints failed: %w", lastErr)
}

func (f *LocalStoresFetcher) queryEndpoint(ctx context.Context, endpoint string, lat, lon float64) (*mapDataResponse, error) {
	// Overpass QL: shop nodes within the radius, JSON output.
	query := fmt.Sprintf(`[out:json];node["shop"](around:%d,%.4f,%.4f);out;`, f.radiusM, lat, lon)
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("map data request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("map data call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("map data status %d", resp.StatusCode)
	}

	var decoded mapDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("map data decode: %w", err)
	}
	return &decoded, nil
}

func (f *LocalStoresFetcher) toListings(decoded *mapDataResponse, intent models.ProductIntent, loc models.LocationContext) []RawListing {
	listings := []RawListing{}
	for _, el := range decoded.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}

		address := firstNonEmpty(
			strings.TrimSpace(el.Tags["addr:street"]+" "+el.Tags["addr:housenumber"]),
			models.FieldNotAvailable,
		)

		// Store identity comes from real map data; price is only an estimate
		// from the expected range, flagged as such in the description.
		listings = append(listings, RawListing{
			Name:         fmt.Sprintf("%s at %s", intent.CanonicalName, name),
			Description:  fmt.Sprintf("Available at %s, %s. Price is an estimate; contact the store to confirm.", name, loc.City),
			Price:        estimatePrice(intent, loc),
			Unit:         intent.Unit,
			Source:       name,
			SourceURL:    el.Tags["website"],
			Availability: models.AvailabilityInStock,
			Vendor: &models.VendorInfo{
				Name:               name,
				Email:              firstNonEmpty(el.Tags["email"], models.FieldNotAvailable),
				Phone:              firstNonEmpty(el.Tags["phone"], models.FieldNotAvailable),
				Address:            address,
				City:               loc.City,
				Country:            loc.Country,
				Type:               models.VendorTypeLocalStore,
				ResponseTime:       models.FieldNotAvailable,
				VerificationStatus: "Listed on open map data",
				BusinessHours:      firstNonEmpty(el.Tags["opening_hours"], models.FieldNotAvailable),
				Provenance:         models.VendorVerified,
			},
		})
	}

	f.logger.Debug("local stores found", map[string]interface{}{
		"stores": len(listings),
		"city":   loc.City,
	})
	return listings
}

// estimatePrice picks the midpoint of the expected range, converted from the
// INR base into the local currency.
func estimatePrice(intent models.ProductIntent, loc models.LocationContext) float64 {
	mid := (intent.PriceMin + intent.PriceMax) / 2
	if mid <= 0 {
		return 0
	}
	return location.FromBase(mid, loc)
}
