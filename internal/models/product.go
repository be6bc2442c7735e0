// internal/models/product.go
package models

// Availability describes stock state as reported (or inferred) per listing.
type Availability string

const (
	AvailabilityInStock      Availability = "In Stock"
	AvailabilityLimitedStock Availability = "Limited Stock"
	AvailabilityPreOrder     Availability = "Pre-Order"
)

// VendorType classifies the kind of seller behind a listing.
type VendorType string

const (
	VendorTypeGlobalSupplier    VendorType = "Global Supplier"
	VendorTypeWholesaleSupplier VendorType = "Wholesale Supplier"
	VendorTypeLocalMarket       VendorType = "Local Market"
	VendorTypeOnlineMarketplace VendorType = "Online Marketplace"
	VendorTypeLocalStore        VendorType = "Local Store"
)

// VendorProvenance records whether vendor metadata was generated from
// templates or came from a real external record. The presentation layer relies
// on this distinction; synthesized data must never be presented as verified.
type VendorProvenance string

const (
	VendorSynthesized VendorProvenance = "synthesized"
	VendorVerified    VendorProvenance = "verified"
)

// FieldNotAvailable marks factual seller fields for which no real data exists.
// Contact details are never filled with plausible-looking placeholders.
const FieldNotAvailable = "Not available"

// VendorInfo carries seller metadata attached to a ProductResult.
type VendorInfo struct {
	Name               string           `json:"vendor_name"`
	Email              string           `json:"vendor_email"`
	Phone              string           `json:"vendor_phone"`
	Address            string           `json:"vendor_address"`
	City               string           `json:"vendor_city"`
	Country            string           `json:"vendor_country"`
	Type               VendorType       `json:"vendor_type"`
	YearsInBusiness    int              `json:"years_in_business"`
	ResponseTime       string           `json:"response_time"`
	VerificationStatus string           `json:"verification_status"`
	BusinessHours      string           `json:"business_hours"`
	Provenance         VendorProvenance `json:"provenance"`
}

// ProductResult is the canonical normalized record produced from any fetcher.
// Constructed once per raw listing and never mutated afterwards.
type ProductResult struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Price          float64      `json:"price"`
	CurrencySymbol string       `json:"currency_symbol"`
	CurrencyCode   string       `json:"currency_code"`
	Source         string       `json:"source"`
	SourceURL      string       `json:"source_url"`
	Rating         float64      `json:"rating"`
	Availability   Availability `json:"availability"`
	Unit           string       `json:"unit"`
	LastUpdated    string       `json:"last_updated"`
	ImageURL       string       `json:"image"`
	Location       string       `json:"location"`

	// PriceOnRequest marks a real store found near the user for which no
	// price could be estimated. Price is zero and must not enter statistics.
	PriceOnRequest bool `json:"price_on_request,omitempty"`

	// Optional attributes, populated only when the source supplies them.
	Brand          string            `json:"brand,omitempty"`
	Model          string            `json:"model,omitempty"`
	Color          string            `json:"color,omitempty"`
	Size           string            `json:"size,omitempty"`
	Material       string            `json:"material,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`

	Vendor *VendorInfo `json:"vendor,omitempty"`
}

// DataSource describes one marketplace that contributed results.
type DataSource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
