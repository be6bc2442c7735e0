// internal/models/intent.go
package models

// ProductIntent is the structured guess of what product a free-text query
// refers to. Produced once per request and consumed by source discovery and
// the fetchers; never persisted.
type ProductIntent struct {
	Searchable    bool     `json:"is_searchable"`
	CanonicalName string   `json:"product_name"`
	Variants      []string `json:"products"`
	Brands        []string `json:"brands"`
	PriceMin      float64  `json:"price_range_min"`
	PriceMax      float64  `json:"price_range_max"`
	Unit          string   `json:"unit"`
	Descriptions  []string `json:"descriptions"`
	Category      string   `json:"category"`
}

// LocationContext is derived from the query text. CurrencyCode is always set;
// queries with no recognizable location resolve to the global default.
type LocationContext struct {
	City           string  `json:"city"`
	State          string  `json:"state"`
	Country        string  `json:"country"`
	CurrencyCode   string  `json:"currency_code"`
	CurrencySymbol string  `json:"currency_symbol"`
	// Rate converts from the INR base into this currency.
	Rate float64 `json:"rate"`
}
