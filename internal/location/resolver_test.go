// internal/location/resolver_test.go
package location

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

func createTestResolver(t *testing.T) *Resolver {
	return NewResolver(logger.NewTestLogger(t))
}

// ==========================
// Resolve
// ==========================

func TestResolve_CityMatching(t *testing.T) {
	r := createTestResolver(t)

	tests := []struct {
		name     string
		query    string
		city     string
		country  string
		currency string
	}{
		{"single word city", "laptop price in mumbai", "Mumbai", "India", "INR"},
		{"multi word city", "iphone in new york", "New York", "USA", "USD"},
		{"multi word city uae", "gold rate abu dhabi", "Abu Dhabi", "UAE", "AED"},
		{"city case insensitive", "shoes in LONDON", "London", "UK", "GBP"},
		{"alternate spelling", "rent in bengaluru", "Bengaluru", "India", "INR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := r.Resolve(tt.query)
			assert.Equal(t, tt.city, loc.City)
			assert.Equal(t, tt.country, loc.Country)
			assert.Equal(t, tt.currency, loc.CurrencyCode)
		})
	}
}

func TestResolve_WordBoundaries(t *testing.T) {
	r := createTestResolver(t)

	// "textiles" contains no whole-word city or country and must fall through
	// to the global default.
	loc := r.Resolve("cotton textiles wholesale")
	assert.Empty(t, loc.City)
	assert.Equal(t, "Global", loc.Country)
	assert.Equal(t, "USD", loc.CurrencyCode)

	// Substrings of known names must not match either.
	loc = r.Resolve("mumbaikar recipes")
	assert.Empty(t, loc.City)
	assert.Equal(t, "Global", loc.Country)
}

func TestResolve_CountryBeatsCity(t *testing.T) {
	r := createTestResolver(t)

	// Country keyword wins even when a city is also present.
	loc := r.Resolve("laptop in london uk")
	assert.Equal(t, "UK", loc.Country)
	assert.Equal(t, "GBP", loc.CurrencyCode)

	loc = r.Resolve("phones india mumbai")
	assert.Equal(t, "India", loc.Country)
	assert.Empty(t, loc.City)
}

func TestResolve_DefaultIsGlobal(t *testing.T) {
	r := createTestResolver(t)

	loc := r.Resolve("wireless headphones under 5000")
	assert.Equal(t, "Global", loc.Country)
	assert.Equal(t, "USD", loc.CurrencyCode)
	assert.Equal(t, "$", loc.CurrencySymbol)
	assert.NotZero(t, loc.Rate)
}

func TestResolve_CurrencyAlwaysSet(t *testing.T) {
	r := createTestResolver(t)

	queries := []string{
		"",
		"laptop",
		"rice price in tokyo",
		"sneakers in toronto canada",
		"perfume dubai",
	}
	for _, q := range queries {
		loc := r.Resolve(q)
		assert.NotEmpty(t, loc.CurrencyCode, "query %q", q)
		assert.NotEmpty(t, loc.CurrencySymbol, "query %q", q)
		assert.Greater(t, loc.Rate, 0.0, "query %q", q)
	}
}

// ==========================
// Convert
// ==========================

func TestFromBase(t *testing.T) {
	r := createTestResolver(t)

	india := r.Resolve("mumbai")
	assert.InDelta(t, 50000.0, FromBase(50000, india), 0.001)

	usa := r.Resolve("new york")
	assert.InDelta(t, 600.0, FromBase(50000, usa), 0.001)

	japan := r.Resolve("tokyo")
	// JPY rounds to whole units
	assert.Equal(t, 90000.0, FromBase(50000, japan))
}

func TestConvert(t *testing.T) {
	r := createTestResolver(t)

	india := r.Resolve("mumbai")
	usa := r.Resolve("new york")
	uk := r.Resolve("london uk")

	assert.InDelta(t, 600.0, Convert(50000, india, usa), 0.001)
	assert.InDelta(t, 475.0, Convert(50000, india, uk), 0.001)

	// Unknown source rate never invents a figure.
	assert.Zero(t, Convert(100, models.LocationContext{}, usa))
}

func TestConvert_RoundTrip(t *testing.T) {
	r := createTestResolver(t)

	pairs := []struct {
		name     string
		from, to models.LocationContext
		amount   float64
	}{
		{"inr-usd", r.Resolve("mumbai"), r.Resolve("new york"), 50000},
		{"usd-gbp", r.Resolve("new york"), r.Resolve("london uk"), 1200},
		{"inr-jpy", r.Resolve("mumbai"), r.Resolve("tokyo"), 2500},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			there := Convert(tt.amount, tt.from, tt.to)
			back := Convert(there, tt.to, tt.from)
			// Two rounding steps; stay within half a percent.
			assert.InDelta(t, tt.amount, back, tt.amount*0.005)
		})
	}
}

func TestRegionFor(t *testing.T) {
	r := createTestResolver(t)

	assert.Equal(t, RegionIndia, r.RegionFor(r.Resolve("delhi")))
	assert.Equal(t, RegionGlobal, r.RegionFor(r.Resolve("nothing located")))
}

func TestCoordinates(t *testing.T) {
	lat, lon, ok := Coordinates("mumbai")
	assert.True(t, ok)
	assert.InDelta(t, 19.07, lat, 0.1)
	assert.InDelta(t, 72.87, lon, 0.1)

	_, _, ok = Coordinates("atlantis")
	assert.False(t, ok)
}
