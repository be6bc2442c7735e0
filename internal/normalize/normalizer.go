// internal/normalize/normalizer.go

// Package normalize converts raw fetcher listings into canonical
// ProductResult records. Listings without a usable name or price are dropped
// here, except verified local stores, which keep a zero price flagged as
// price-on-request. Fields with no real data carry the explicit
// "Not available" marker rather than invented values.
package normalize

import (
	"strings"
	"time"

	"price-scout/internal/common/logger"
	"price-scout/internal/fetch"
	"price-scout/internal/models"
)

type Normalizer struct {
	logger logger.Logger
}

func New(log logger.Logger) *Normalizer {
	return &Normalizer{
		logger: log.WithFields(map[string]interface{}{"component": "normalize"}),
	}
}

// Normalize converts one fetcher's listings. now is injected for
// deterministic tests.
func (n *Normalizer) Normalize(raw []fetch.RawListing, intent models.ProductIntent, loc models.LocationContext, now time.Time) []models.ProductResult {
	results := make([]models.ProductResult, 0, len(raw))
	dropped := 0

	for _, l := range raw {
		if strings.TrimSpace(l.Name) == "" {
			dropped++
			continue
		}
		// A priced source without a price is noise. A real store found near
		// the user is not; it surfaces as price-on-request instead.
		priceOnRequest := l.Price <= 0 && isVerifiedLocalStore(l)
		if l.Price <= 0 && !priceOnRequest {
			dropped++
			continue
		}

		unit := l.Unit
		if unit == "" {
			unit = intent.Unit
		}
		if unit == "" {
			unit = "per piece"
		}

		availability := l.Availability
		if availability == "" {
			availability = models.AvailabilityInStock
		}

		locationLabel := loc.Country
		if loc.City != "" {
			locationLabel = loc.City + ", " + loc.Country
		}

		results = append(results, models.ProductResult{
			Name:           strings.TrimSpace(l.Name),
			Description:    strings.TrimSpace(l.Description),
			Price:          l.Price,
			CurrencySymbol: loc.CurrencySymbol,
			CurrencyCode:   loc.CurrencyCode,
			Source:         l.Source,
			SourceURL:      l.SourceURL,
			Rating:         clampRating(l.Rating),
			Availability:   availability,
			Unit:           unit,
			LastUpdated:    now.UTC().Format(time.RFC3339),
			ImageURL:       l.ImageURL,
			Location:       locationLabel,
			PriceOnRequest: priceOnRequest,
			Brand:          l.Brand,
			Vendor:         l.Vendor,
		})
	}

	if dropped > 0 {
		n.logger.Debug("listings dropped during normalization", map[string]interface{}{
			"dropped": dropped,
			"kept":    len(results),
		})
	}
	return results
}

func isVerifiedLocalStore(l fetch.RawListing) bool {
	return l.Vendor != nil &&
		l.Vendor.Type == models.VendorTypeLocalStore &&
		l.Vendor.Provenance == models.VendorVerified
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
