// internal/location/resolver.go
package location

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// Resolver derives a LocationContext from free query text. Matching is
// whole-word: "textiles" must not hit any city or country fragment.
type Resolver struct {
	countryPatterns []keywordPattern
	cityPatterns    []cityPattern
	logger          logger.Logger
}

type keywordPattern struct {
	re     *regexp.Regexp
	region Region
}

type cityPattern struct {
	re     *regexp.Regexp
	record cityRecord
}

func NewResolver(log logger.Logger) *Resolver {
	r := &Resolver{
		logger: log.WithFields(map[string]interface{}{"component": "location"}),
	}

	// Longer literals first so "new york" wins over any shorter overlap.
	countries := make([]string, 0, len(countryKeywords))
	for kw := range countryKeywords {
		countries = append(countries, kw)
	}
	sort.Slice(countries, func(i, j int) bool {
		if len(countries[i]) != len(countries[j]) {
			return len(countries[i]) > len(countries[j])
		}
		return countries[i] < countries[j]
	})
	for _, kw := range countries {
		r.countryPatterns = append(r.countryPatterns, keywordPattern{
			re:     wordPattern(kw),
			region: countryKeywords[kw],
		})
	}

	cities := make([]cityRecord, len(cityTable))
	copy(cities, cityTable)
	sort.Slice(cities, func(i, j int) bool {
		if len(cities[i].City) != len(cities[j].City) {
			return len(cities[i].City) > len(cities[j].City)
		}
		return cities[i].City < cities[j].City
	})
	for _, rec := range cities {
		r.cityPatterns = append(r.cityPatterns, cityPattern{
			re:     wordPattern(rec.City),
			record: rec,
		})
	}

	return r
}

func wordPattern(literal string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(literal) + `\b`)
}

// Resolve inspects the query and returns a fully populated LocationContext.
// Country keywords take priority over city names. Queries with no
// recognizable location resolve to the global default; CurrencyCode is never
// empty.
func (r *Resolver) Resolve(query string) models.LocationContext {
	q := strings.ToLower(query)

	for _, p := range r.countryPatterns {
		if p.re.MatchString(q) {
			ctx := r.regionContext(p.region)
			r.logger.Debug("location resolved from country keyword", map[string]interface{}{
				"region": string(p.region),
			})
			return ctx
		}
	}

	for _, p := range r.cityPatterns {
		if p.re.MatchString(q) {
			ctx := r.regionContext(p.record.Region)
			ctx.City = titleCase(p.record.City)
			ctx.State = p.record.State
			r.logger.Debug("location resolved from city", map[string]interface{}{
				"city":   ctx.City,
				"region": string(p.record.Region),
			})
			return ctx
		}
	}

	return r.regionContext(RegionGlobal)
}

// RegionFor maps a LocationContext back to its pricing region.
func (r *Resolver) RegionFor(loc models.LocationContext) Region {
	for region, label := range countryLabel {
		if label == loc.Country {
			return region
		}
	}
	return RegionGlobal
}

func (r *Resolver) regionContext(region Region) models.LocationContext {
	cur := currencyTable[region]
	return models.LocationContext{
		Country:        countryLabel[region],
		CurrencyCode:   cur.Code,
		CurrencySymbol: cur.Symbol,
		Rate:           cur.Rate,
	}
}

// Convert changes an amount from one currency context to another through the
// INR-relative rate table. A non-positive source rate yields zero; amounts are
// never guessed.
func Convert(amount float64, from, to models.LocationContext) float64 {
	if from.Rate <= 0 {
		return 0
	}
	return FromBase(amount/from.Rate, to)
}

// FromBase turns an INR base price into the context's currency, rounded to
// two decimals. JPY rounds to whole yen.
func FromBase(basePriceINR float64, loc models.LocationContext) float64 {
	converted := basePriceINR * loc.Rate
	if loc.CurrencyCode == "JPY" {
		return math.Round(converted)
	}
	return math.Round(converted*100) / 100
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
