// internal/fetch/websearch.go
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gocolly/colly/v2"

	"price-scout/internal/common/config"
	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// WebSearchFetcher scrapes shopping verticals of configured search pages.
// Each endpoint is a URL template with a %s query placeholder; results from
// all endpoints are merged.
type WebSearchFetcher struct {
	cfg    config.FetchersConfig
	logger logger.Logger
}

func NewWebSearchFetcher(cfg *config.Config, log logger.Logger) *WebSearchFetcher {
	return &WebSearchFetcher{
		cfg:    cfg.Fetchers,
		logger: log.WithFields(map[string]interface{}{"fetcher": "websearch"}),
	}
}

func (f *WebSearchFetcher) Name() string { return "websearch" }

func (f *WebSearchFetcher) SourceType() models.VendorType { return models.VendorTypeOnlineMarketplace }

func (f *WebSearchFetcher) Available() bool {
	return f.cfg.WebSearch.Enabled && len(f.cfg.WebSearch.Endpoints) > 0
}

func (f *WebSearchFetcher) Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error) {
	var (
		mu       sync.Mutex
		listings []RawListing
		lastErr  error
	)

	for _, endpoint := range f.cfg.WebSearch.Endpoints {
		if ctx.Err() != nil {
			break
		}

		searchURL := fmt.Sprintf(endpoint, url.QueryEscape(intent.CanonicalName))
		parsed, err := url.Parse(searchURL)
		if err != nil || parsed.Host == "" {
			f.logger.Warn("skipping malformed search endpoint", map[string]interface{}{
				"endpoint": endpoint,
			})
			continue
		}

		collector := colly.NewCollector(
			colly.AllowedDomains(parsed.Host, parsed.Hostname()),
			colly.UserAgent(f.cfg.WebSearch.UserAgent),
		)
		collector.SetRequestTimeout(config.GetDuration(f.cfg.WebSearch.Timeout))

		host := parsed.Host
		collector.OnHTML(".shopping-result", func(e *colly.HTMLElement) {
			name := strings.TrimSpace(e.ChildText(".result-title"))
			if name == "" {
				return
			}
			price, err := ParsePrice(e.ChildText(".result-price"))
			if err != nil {
				return
			}

			mu.Lock()
			listings = append(listings, RawListing{
				Name:         name,
				Description:  strings.TrimSpace(e.ChildText(".result-snippet")),
				Price:        price,
				Source:       firstNonEmpty(strings.TrimSpace(e.ChildText(".result-merchant")), host),
				SourceURL:    e.Request.AbsoluteURL(e.ChildAttr("a.result-link", "href")),
				Availability: models.AvailabilityInStock,
				ImageURL:     e.Request.AbsoluteURL(e.ChildAttr("img", "src")),
			})
			mu.Unlock()
		})

		collector.OnError(func(r *colly.Response, err error) {
			mu.Lock()
			lastErr = err
			mu.Unlock()
		})

		if err := collector.Visit(searchURL); err != nil {
			lastErr = err
			continue
		}
		collector.Wait()
	}

	if len(listings) == 0 && lastErr != nil {
		return nil, fmt.Errorf("web search scrape: %w", lastErr)
	}

	f.logger.Debug("web search scraped", map[string]interface{}{
		"listings":  len(listings),
		"endpoints": len(f.cfg.WebSearch.Endpoints),
	})
	return listings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
