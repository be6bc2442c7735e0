// internal/search/summary.go
package search

import (
	"fmt"
	"strings"

	"price-scout/internal/common/config"
	"price-scout/internal/models"
)

// Summarizer renders the markdown analysis shown above the results table.
// Badge policy is configurable; the defaults mirror the dashboard's
// expectations.
type Summarizer struct {
	minRating   float64
	priceBand   float64
	dealFactor  float64
}

func NewSummarizer(cfg config.SearchConfig) *Summarizer {
	return &Summarizer{
		minRating:  cfg.BestValueMinRating,
		priceBand:  cfg.BestValuePriceBand,
		dealFactor: cfg.BestDealPriceFactor,
	}
}

// Summarize builds the markdown analysis for a result set. Empty input
// produces an honest no-results message, never invented figures.
func (s *Summarizer) Summarize(query string, results []models.ProductResult, loc models.LocationContext) string {
	if len(results) == 0 {
		return fmt.Sprintf(
			"## No Results\n\nNo live listings were found for **%s**. No sources returned data for this search; nothing has been estimated in their place. Try a more specific product name or a different location.",
			query,
		)
	}

	priced := pricedOnly(results)
	symbol := loc.CurrencySymbol

	var b strings.Builder
	fmt.Fprintf(&b, "## Price Summary for %s\n\n", query)
	fmt.Fprintf(&b, "- **Listings found:** %d\n", len(results))

	if len(priced) == 0 {
		b.WriteString("- All listings are price-on-request; contact the stores directly for quotes.\n")
		return b.String()
	}

	lowest, highest, avg := priceStats(priced)
	fmt.Fprintf(&b, "- **Lowest price:** %s%.2f\n", symbol, lowest.Price)
	fmt.Fprintf(&b, "- **Highest price:** %s%.2f\n", symbol, highest.Price)
	fmt.Fprintf(&b, "- **Average price:** %s%.2f\n\n", symbol, avg)

	if best := s.BestValue(results); best != nil {
		fmt.Fprintf(&b, "### Best Value\n\n**%s** from %s at %s%.2f (rated %.1f) balances price and rating best in this set.\n\n",
			best.Name, best.Source, symbol, best.Price, best.Rating)
	}

	b.WriteString("### Buying Tips\n\n")
	fmt.Fprintf(&b, "- Prices below %s%.2f are under the average for this search.\n", symbol, avg)
	if lowest.Source != "" {
		fmt.Fprintf(&b, "- The cheapest listing is on %s; check seller ratings before ordering.\n", lowest.Source)
	}
	b.WriteString("- Listings marked with synthesized vendor profiles have no verified contact details.\n")

	return b.String()
}

// BestValue returns the highest-rated result whose rating clears the floor
// and whose price stays within the configured band of the average. Nil when
// nothing qualifies.
func (s *Summarizer) BestValue(results []models.ProductResult) *models.ProductResult {
	results = pricedOnly(results)
	if len(results) == 0 {
		return nil
	}

	_, _, avg := priceStats(results)
	var best *models.ProductResult
	for i := range results {
		r := &results[i]
		if r.Rating < s.minRating {
			continue
		}
		if avg > 0 && (r.Price < avg*(1-s.priceBand) || r.Price > avg*(1+s.priceBand)) {
			continue
		}
		if best == nil || r.Rating > best.Rating || (r.Rating == best.Rating && r.Price < best.Price) {
			best = r
		}
	}
	return best
}

// BestDeal returns the cheapest listing at or below dealFactor times the
// average price.
func (s *Summarizer) BestDeal(results []models.ProductResult) *models.ProductResult {
	results = pricedOnly(results)
	if len(results) == 0 {
		return nil
	}

	_, _, avg := priceStats(results)
	var best *models.ProductResult
	for i := range results {
		r := &results[i]
		if r.Price > avg*s.dealFactor {
			continue
		}
		if best == nil || r.Price < best.Price {
			best = r
		}
	}
	return best
}

// pricedOnly filters out price-on-request entries; they carry no figure to
// aggregate.
func pricedOnly(results []models.ProductResult) []models.ProductResult {
	priced := make([]models.ProductResult, 0, len(results))
	for _, r := range results {
		if r.PriceOnRequest || r.Price <= 0 {
			continue
		}
		priced = append(priced, r)
	}
	return priced
}

func priceStats(results []models.ProductResult) (lowest, highest models.ProductResult, avg float64) {
	lowest, highest = results[0], results[0]
	total := 0.0
	for _, r := range results {
		total += r.Price
		if r.Price < lowest.Price {
			lowest = r
		}
		if r.Price > highest.Price {
			highest = r
		}
	}
	return lowest, highest, total / float64(len(results))
}
