// internal/normalize/normalizer_test.go
package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-scout/internal/common/logger"
	"price-scout/internal/fetch"
	"price-scout/internal/models"
)

func TestNormalize(t *testing.T) {
	n := New(logger.NewTestLogger(t))
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	intent := models.ProductIntent{Unit: "per kg"}
	loc := models.LocationContext{
		City: "Mumbai", Country: "India",
		CurrencyCode: "INR", CurrencySymbol: "₹", Rate: 1.0,
	}

	raw := []fetch.RawListing{
		{Name: "  Basmati Rice  ", Description: " premium grade ", Price: 120, Source: "IndiaMART", Rating: 4.2},
		{Name: "Free Sample", Price: 0},
		{Name: "", Price: 50},
		{Name: "Overrated Rice", Price: 99, Rating: 9.5},
	}

	results := n.Normalize(raw, intent, loc, now)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "Basmati Rice", first.Name)
	assert.Equal(t, "premium grade", first.Description)
	assert.Equal(t, "INR", first.CurrencyCode)
	assert.Equal(t, "₹", first.CurrencySymbol)
	assert.Equal(t, "per kg", first.Unit, "unit defaults from intent")
	assert.Equal(t, models.AvailabilityInStock, first.Availability)
	assert.Equal(t, "Mumbai, India", first.Location)
	assert.Equal(t, "2026-08-30T12:00:00Z", first.LastUpdated)

	assert.Equal(t, 5.0, results[1].Rating, "ratings clamp to 5")
}

func TestNormalize_UnitFallbackChain(t *testing.T) {
	n := New(logger.NewNoOpLogger())
	now := time.Now()

	raw := []fetch.RawListing{{Name: "Widget", Price: 10, Unit: "per dozen"}}
	results := n.Normalize(raw, models.ProductIntent{Unit: "per piece"}, models.LocationContext{Country: "Global"}, now)
	require.Len(t, results, 1)
	assert.Equal(t, "per dozen", results[0].Unit, "listing unit wins over intent")

	raw = []fetch.RawListing{{Name: "Widget", Price: 10}}
	results = n.Normalize(raw, models.ProductIntent{}, models.LocationContext{Country: "Global"}, now)
	require.Len(t, results, 1)
	assert.Equal(t, "per piece", results[0].Unit)
}

func TestNormalize_PreservesVendor(t *testing.T) {
	n := New(logger.NewNoOpLogger())

	vendor := &models.VendorInfo{Name: "Verma Electronics", Provenance: models.VendorVerified}
	raw := []fetch.RawListing{{Name: "Laptop", Price: 500, Vendor: vendor}}

	results := n.Normalize(raw, models.ProductIntent{}, models.LocationContext{Country: "India"}, time.Now())
	require.Len(t, results, 1)
	assert.Same(t, vendor, results[0].Vendor)
}

func TestNormalize_ZeroPriceLocalStoreKeptAsPriceOnRequest(t *testing.T) {
	n := New(logger.NewTestLogger(t))
	loc := models.LocationContext{City: "Mumbai", Country: "India", CurrencyCode: "INR"}

	store := &models.VendorInfo{
		Name:       "Verma Electronics",
		Type:       models.VendorTypeLocalStore,
		Provenance: models.VendorVerified,
	}
	raw := []fetch.RawListing{
		{Name: "Laptop at Verma Electronics", Price: 0, Vendor: store},
	}

	results := n.Normalize(raw, models.ProductIntent{}, loc, time.Now())
	require.Len(t, results, 1, "a real nearby store is never silently discarded")

	got := results[0]
	assert.True(t, got.PriceOnRequest)
	assert.Zero(t, got.Price)
	assert.Same(t, store, got.Vendor)
}

func TestNormalize_ZeroPriceDroppedForOtherSources(t *testing.T) {
	n := New(logger.NewNoOpLogger())
	loc := models.LocationContext{Country: "India"}

	raw := []fetch.RawListing{
		{Name: "Priced Source Without Price", Price: 0},
		{Name: "Synthesized Store", Price: 0, Vendor: &models.VendorInfo{
			Type:       models.VendorTypeLocalStore,
			Provenance: models.VendorSynthesized,
		}},
		{Name: "Marketplace Without Price", Price: 0, Vendor: &models.VendorInfo{
			Type:       models.VendorTypeOnlineMarketplace,
			Provenance: models.VendorVerified,
		}},
	}

	results := n.Normalize(raw, models.ProductIntent{}, loc, time.Now())
	assert.Empty(t, results, "price-on-request applies only to verified local stores")
}

func TestNormalize_LocationWithoutCity(t *testing.T) {
	n := New(logger.NewNoOpLogger())

	raw := []fetch.RawListing{{Name: "Laptop", Price: 500}}
	results := n.Normalize(raw, models.ProductIntent{}, models.LocationContext{Country: "Global"}, time.Now())
	require.Len(t, results, 1)
	assert.Equal(t, "Global", results[0].Location)
}
