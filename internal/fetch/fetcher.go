// internal/fetch/fetcher.go

// Package fetch gathers raw product listings from external sources. Every
// source implements Fetcher; the orchestrator fans out over all available
// fetchers and treats any single failure as zero results from that source.
package fetch

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"price-scout/internal/models"
)

// RawListing is one listing as reported by a source, prices already in the
// request's local currency. Normalization fills gaps and converts to
// ProductResult.
type RawListing struct {
	Name         string
	Description  string
	Price        float64
	Unit         string
	Source       string
	SourceURL    string
	Rating       float64
	Availability models.Availability
	ImageURL     string
	Brand        string

	// Vendor is non-nil only when the source supplies real seller data.
	// Nil listings get synthesized vendor metadata during enrichment.
	Vendor *models.VendorInfo
}

// Fetcher is one external listing source.
type Fetcher interface {
	Name() string
	SourceType() models.VendorType
	// Available reports whether the fetcher is configured to run. Missing
	// credentials disable a fetcher without failing the search.
	Available() bool
	Fetch(ctx context.Context, intent models.ProductIntent, loc models.LocationContext) ([]RawListing, error)
}

var priceRe = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// ParsePrice extracts a numeric amount from scraped price text such as
// "₹1,29,999.00" or "$54.23".
func ParsePrice(text string) (float64, error) {
	match := priceRe.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no numeric price in %q", text)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", match, err)
	}
	return value, nil
}

// parseAvailability maps free-text stock phrases onto the Availability enum.
func parseAvailability(text string) models.Availability {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "pre-order") || strings.Contains(t, "preorder"):
		return models.AvailabilityPreOrder
	case strings.Contains(t, "limited") || strings.Contains(t, "few left") || strings.Contains(t, "low stock"):
		return models.AvailabilityLimitedStock
	default:
		return models.AvailabilityInStock
	}
}
