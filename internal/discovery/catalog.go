// internal/discovery/catalog.go

// Package discovery decides which marketplaces to consult for a given
// product category and region. Results are cached; the static catalog below
// is both the fallback and the seed the AI path refines.
package discovery

import (
	"price-scout/internal/location"
	"price-scout/internal/models"
)

// SourceType buckets marketplaces by how listings are obtained from them.
type SourceType string

const (
	SourceGlobalSuppliers    SourceType = "global_suppliers"
	SourceLocalMarkets       SourceType = "local_markets"
	SourceOnlineMarketplaces SourceType = "online_marketplaces"
)

var staticCatalog = map[location.Region]map[SourceType][]models.DataSource{
	location.RegionIndia: {
		SourceGlobalSuppliers: {
			{Name: "IndiaMART", URL: "https://www.indiamart.com", Type: "B2B marketplace", Description: "India's largest B2B supplier directory"},
			{Name: "TradeIndia", URL: "https://www.tradeindia.com", Type: "B2B marketplace", Description: "Indian exporters and wholesale suppliers"},
			{Name: "Alibaba", URL: "https://www.alibaba.com", Type: "B2B marketplace", Description: "Global wholesale trading platform"},
		},
		SourceLocalMarkets: {
			{Name: "JioMart", URL: "https://www.jiomart.com", Type: "local retail", Description: "Pan-India online grocery and retail"},
			{Name: "BigBasket", URL: "https://www.bigbasket.com", Type: "local retail", Description: "Indian online grocery chain"},
		},
		SourceOnlineMarketplaces: {
			{Name: "Amazon India", URL: "https://www.amazon.in", Type: "online marketplace", Description: "Amazon's Indian storefront"},
			{Name: "Flipkart", URL: "https://www.flipkart.com", Type: "online marketplace", Description: "Leading Indian e-commerce platform"},
			{Name: "Snapdeal", URL: "https://www.snapdeal.com", Type: "online marketplace", Description: "Value-focused Indian marketplace"},
		},
	},
	location.RegionUSA: {
		SourceGlobalSuppliers: {
			{Name: "Alibaba", URL: "https://www.alibaba.com", Type: "B2B marketplace", Description: "Global wholesale trading platform"},
			{Name: "Global Sources", URL: "https://www.globalsources.com", Type: "B2B marketplace", Description: "Verified export suppliers"},
		},
		SourceLocalMarkets: {
			{Name: "Costco", URL: "https://www.costco.com", Type: "local retail", Description: "US warehouse club"},
			{Name: "Target", URL: "https://www.target.com", Type: "local retail", Description: "US general merchandise retailer"},
		},
		SourceOnlineMarketplaces: {
			{Name: "Amazon", URL: "https://www.amazon.com", Type: "online marketplace", Description: "Amazon's US storefront"},
			{Name: "eBay", URL: "https://www.ebay.com", Type: "online marketplace", Description: "Auction and fixed-price marketplace"},
			{Name: "Walmart", URL: "https://www.walmart.com", Type: "online marketplace", Description: "Walmart online"},
		},
	},
	location.RegionUK: {
		SourceGlobalSuppliers: {
			{Name: "Alibaba", URL: "https://www.alibaba.com", Type: "B2B marketplace", Description: "Global wholesale trading platform"},
		},
		SourceLocalMarkets: {
			{Name: "Tesco", URL: "https://www.tesco.com", Type: "local retail", Description: "UK grocery and general retail"},
		},
		SourceOnlineMarketplaces: {
			{Name: "Amazon UK", URL: "https://www.amazon.co.uk", Type: "online marketplace", Description: "Amazon's UK storefront"},
			{Name: "Argos", URL: "https://www.argos.co.uk", Type: "online marketplace", Description: "UK catalogue retailer"},
			{Name: "eBay UK", URL: "https://www.ebay.co.uk", Type: "online marketplace", Description: "eBay's UK site"},
		},
	},
	location.RegionUAE: {
		SourceGlobalSuppliers: {
			{Name: "Alibaba", URL: "https://www.alibaba.com", Type: "B2B marketplace", Description: "Global wholesale trading platform"},
			{Name: "TradeKey", URL: "https://www.tradekey.com", Type: "B2B marketplace", Description: "Middle East B2B marketplace"},
		},
		SourceLocalMarkets: {
			{Name: "Carrefour UAE", URL: "https://www.carrefouruae.com", Type: "local retail", Description: "UAE hypermarket chain"},
		},
		SourceOnlineMarketplaces: {
			{Name: "Amazon.ae", URL: "https://www.amazon.ae", Type: "online marketplace", Description: "Amazon's UAE storefront"},
			{Name: "Noon", URL: "https://www.noon.com", Type: "online marketplace", Description: "Gulf region e-commerce platform"},
		},
	},
}

// defaultCatalog serves regions without a dedicated entry.
var defaultCatalog = map[SourceType][]models.DataSource{
	SourceGlobalSuppliers: {
		{Name: "Alibaba", URL: "https://www.alibaba.com", Type: "B2B marketplace", Description: "Global wholesale trading platform"},
		{Name: "Global Sources", URL: "https://www.globalsources.com", Type: "B2B marketplace", Description: "Verified export suppliers"},
		{Name: "Made-in-China", URL: "https://www.made-in-china.com", Type: "B2B marketplace", Description: "Chinese manufacturer directory"},
	},
	SourceLocalMarkets: {
		{Name: "Local Markets", URL: "", Type: "local retail", Description: "Region-specific physical markets"},
	},
	SourceOnlineMarketplaces: {
		{Name: "Amazon", URL: "https://www.amazon.com", Type: "online marketplace", Description: "Amazon global"},
		{Name: "eBay", URL: "https://www.ebay.com", Type: "online marketplace", Description: "Auction and fixed-price marketplace"},
		{Name: "AliExpress", URL: "https://www.aliexpress.com", Type: "online marketplace", Description: "Cross-border retail marketplace"},
	},
}

// CatalogSources returns the static marketplace list for a region, optionally
// narrowed to one source type. An empty sourceType merges all three buckets.
// Always non-empty for the merged case.
func CatalogSources(region location.Region, sourceType SourceType) []models.DataSource {
	catalog, ok := staticCatalog[region]
	if !ok {
		catalog = defaultCatalog
	}

	if sourceType != "" {
		return append([]models.DataSource{}, catalog[sourceType]...)
	}

	out := []models.DataSource{}
	for _, st := range []SourceType{SourceGlobalSuppliers, SourceLocalMarkets, SourceOnlineMarketplaces} {
		out = append(out, catalog[st]...)
	}
	return out
}
