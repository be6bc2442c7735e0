// internal/fetch/directsite_test.go
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-scout/internal/common/config"
	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

const searchPageHTML = `<html><body>
<div class="product-item">
  <span class="product-name">Dell Inspiron 15</span>
  <span class="product-brand">Dell</span>
  <span class="product-price">$549.99</span>
  <span class="product-rating">4.3</span>
  <span class="product-availability">In stock</span>
  <span class="product-description">Everyday laptop with 16GB RAM</span>
  <a class="product-link" href="/p/dell-inspiron-15">view</a>
  <img src="/img/dell.jpg"/>
</div>
<div class="product-item">
  <span class="product-name">HP Pavilion</span>
  <span class="product-price">$629.00</span>
  <span class="product-availability">Only 2 left - limited</span>
  <a class="product-link" href="/p/hp-pavilion">view</a>
</div>
<div class="product-item">
  <span class="product-name">Broken Listing</span>
  <span class="product-price">call us</span>
</div>
</body></html>`

func createDirectSiteFetcher(t *testing.T, baseURL string) *DirectSiteFetcher {
	cfg := &config.Config{}
	cfg.Fetchers.DirectSite.Enabled = true
	cfg.Fetchers.DirectSite.BaseURL = baseURL
	cfg.Fetchers.DirectSite.UserAgent = "price-scout-test"
	cfg.Fetchers.DirectSite.Timeout = 5000
	cfg.Fetchers.DirectSite.MaxPages = 1

	f, err := NewDirectSiteFetcher(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	return f
}

func TestDirectSiteFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "gaming laptop", r.URL.Query().Get("q"))
		fmt.Fprint(w, searchPageHTML)
	}))
	defer srv.Close()

	f := createDirectSiteFetcher(t, srv.URL)
	require.True(t, f.Available())

	intent := models.ProductIntent{Searchable: true, CanonicalName: "gaming laptop"}
	listings, err := f.Fetch(context.Background(), intent, models.LocationContext{CurrencyCode: "USD"})
	require.NoError(t, err)

	// The listing with unparseable price is dropped.
	require.Len(t, listings, 2)

	assert.Equal(t, "Dell Inspiron 15", listings[0].Name)
	assert.Equal(t, 549.99, listings[0].Price)
	assert.Equal(t, 4.3, listings[0].Rating)
	assert.Equal(t, "Dell", listings[0].Brand)
	assert.Equal(t, models.AvailabilityInStock, listings[0].Availability)
	assert.Contains(t, listings[0].SourceURL, "/p/dell-inspiron-15")

	assert.Equal(t, models.AvailabilityLimitedStock, listings[1].Availability)
}

func TestDirectSiteFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := createDirectSiteFetcher(t, srv.URL)
	_, err := f.Fetch(context.Background(), models.ProductIntent{CanonicalName: "laptop"}, models.LocationContext{})
	assert.Error(t, err)
}

func TestDirectSiteFetcher_UnavailableWithoutBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Fetchers.DirectSite.Enabled = true

	f, err := NewDirectSiteFetcher(cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.False(t, f.Available())
}
