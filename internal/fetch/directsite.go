// internal/fetch/directsite.go
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

// DirectSiteFetcher scrapes a configured retail site's search results page.
type DirectSiteFetcher struct {
	cfg      config.FetchersConfig
	host     string
	hostname string
	logger   logger.Logger
}

func NewDirectSiteFetcher(cfg *config.Config, log logger.Logger) (*DirectSiteFetcher, error) {
	f := &DirectSiteFetcher{
		cfg:    cfg.Fetchers,
		logger: log.WithFields(map[string]interface{}{"fetcher": "directsite"}),
	}

	if cfg.Fetchers.DirectSite.BaseURL != "" {
		parsed, err := url.Parse(cfg.Fetchers.DirectSite.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse direct site base url: %w", err)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("direct site base url must include a host")
		}
		f.host = parsed.Host
		f.hostname = parsed.Hostname()
	}

	return f, nil
}

func (f *DirectSiteFetcher) Name() string { return "directsite" }

func (f *DirectSiteFetcher) SourceType() models.VendorType { return models.VendorTypeOnlineMarketplace }

func (f *DirectSiteFetcher) Available() bool {
	return f.cfg.DirectSite.Enabled && f.cfg.DirectSite.BaseURL != ""
}

func (f *DirectSiteFetcher) Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(f.host, f.hostname),
		colly.UserAgent(f.cfg.DirectSite.UserAgent),
	)
	collector.SetRequestTimeout(config.GetDuration(f.cfg.DirectSite.Timeout))

	var (
		mu        sync.Mutex
		listings  []RawListing
		scrapeErr error
	)

	collector.OnHTML(".product-item", func(e *colly.HTMLElement) {
		listing := f.extractListing(e, loc)
		if listing == nil {
			return
		}
		mu.Lock()
		listings = append(listings, *listing)
		mu.Unlock()
	})

	pages := 0
	collector.OnHTML("a.next-page", func(e *colly.HTMLElement) {
		pages++
		if pages >= f.cfg.DirectSite.MaxPages {
			return
		}
		if ctx.Err() != nil {
			return
		}
		_ = collector.Visit(e.Request.AbsoluteURL(e.Attr("href")))
	})

	collector.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		scrapeErr = err
		mu.Unlock()
	})

	searchURL := fmt.Sprintf("%s/search?q=%s",
		strings.TrimRight(f.cfg.DirectSite.BaseURL, "/"),
		url.QueryEscape(intent.CanonicalName))

	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("direct site visit: %w", err)
	}
	collector.Wait()

	if len(listings) == 0 && scrapeErr != nil {
		return nil, fmt.Errorf("direct site scrape: %w", scrapeErr)
	}

	f.logger.Debug("direct site scraped", map[string]interface{}{
		"listings": len(listings),
		"query":    intent.CanonicalName,
	})
	return listings, nil
}

func (f *DirectSiteFetcher) extractListing(e *colly.HTMLElement, loc models.LocationContext) *RawListing {
	name := strings.TrimSpace(e.ChildText(".product-name"))
	if name == "" {
		return nil
	}

	price, err := ParsePrice(e.ChildText(".product-price"))
	if err != nil {
		return nil
	}

	rating := 0.0
	if r, err := ParsePrice(e.ChildText(".product-rating")); err == nil && r <= 5 {
		rating = r
	}

	listing := &RawListing{
		Name:         name,
		Description:  strings.TrimSpace(e.ChildText(".product-description")),
		Price:        price,
		Source:       f.host,
		SourceURL:    e.Request.AbsoluteURL(e.ChildAttr("a.product-link", "href")),
		Rating:       rating,
		Availability: parseAvailability(e.ChildText(".product-availability")),
		ImageURL:     e.Request.AbsoluteURL(e.ChildAttr("img", "src")),
		Brand:        strings.TrimSpace(e.ChildText(".product-brand")),
	}
	return listing
}
