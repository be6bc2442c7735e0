// internal/location/tables.go
package location

// Region identifies a pricing region keyed by country or "global".
type Region string

const (
	RegionIndia     Region = "india"
	RegionUSA       Region = "usa"
	RegionUK        Region = "uk"
	RegionUAE       Region = "uae"
	RegionEurope    Region = "europe"
	RegionJapan     Region = "japan"
	RegionAustralia Region = "australia"
	RegionCanada    Region = "canada"
	RegionGlobal    Region = "global"
)

// currencyInfo describes a region's currency. Rate converts from the INR base
// price used by the synthetic catalogs.
type currencyInfo struct {
	Code   string
	Symbol string
	Rate   float64
}

var currencyTable = map[Region]currencyInfo{
	RegionIndia:     {Code: "INR", Symbol: "₹", Rate: 1.0},
	RegionUSA:       {Code: "USD", Symbol: "$", Rate: 0.012},
	RegionUK:        {Code: "GBP", Symbol: "£", Rate: 0.0095},
	RegionUAE:       {Code: "AED", Symbol: "د.إ", Rate: 0.044},
	RegionEurope:    {Code: "EUR", Symbol: "€", Rate: 0.011},
	RegionJapan:     {Code: "JPY", Symbol: "¥", Rate: 1.8},
	RegionAustralia: {Code: "AUD", Symbol: "A$", Rate: 0.018},
	RegionCanada:    {Code: "CAD", Symbol: "C$", Rate: 0.016},
	RegionGlobal:    {Code: "USD", Symbol: "$", Rate: 0.012},
}

// cityRecord maps a known city to its region and state/province label.
type cityRecord struct {
	City   string
	State  string
	Region Region
}

// Cities recognized in query text. Matching is whole-word; multi-word names
// match as a single literal.
var cityTable = []cityRecord{
	{City: "mumbai", State: "Maharashtra", Region: RegionIndia},
	{City: "delhi", State: "Delhi", Region: RegionIndia},
	{City: "bangalore", State: "Karnataka", Region: RegionIndia},
	{City: "bengaluru", State: "Karnataka", Region: RegionIndia},
	{City: "chennai", State: "Tamil Nadu", Region: RegionIndia},
	{City: "hyderabad", State: "Telangana", Region: RegionIndia},
	{City: "kolkata", State: "West Bengal", Region: RegionIndia},
	{City: "pune", State: "Maharashtra", Region: RegionIndia},
	{City: "ahmedabad", State: "Gujarat", Region: RegionIndia},

	{City: "new york", State: "New York", Region: RegionUSA},
	{City: "los angeles", State: "California", Region: RegionUSA},
	{City: "chicago", State: "Illinois", Region: RegionUSA},
	{City: "houston", State: "Texas", Region: RegionUSA},
	{City: "san francisco", State: "California", Region: RegionUSA},

	{City: "london", State: "England", Region: RegionUK},
	{City: "manchester", State: "England", Region: RegionUK},
	{City: "birmingham", State: "England", Region: RegionUK},

	{City: "dubai", State: "Dubai", Region: RegionUAE},
	{City: "abu dhabi", State: "Abu Dhabi", Region: RegionUAE},

	{City: "tokyo", State: "Tokyo", Region: RegionJapan},

	{City: "sydney", State: "New South Wales", Region: RegionAustralia},
	{City: "melbourne", State: "Victoria", Region: RegionAustralia},

	{City: "toronto", State: "Ontario", Region: RegionCanada},
	{City: "vancouver", State: "British Columbia", Region: RegionCanada},

	{City: "paris", State: "Île-de-France", Region: RegionEurope},
	{City: "berlin", State: "Berlin", Region: RegionEurope},
}

// Country keywords checked before cities so "india" beats any city mention.
var countryKeywords = map[string]Region{
	"india":     RegionIndia,
	"usa":       RegionUSA,
	"america":   RegionUSA,
	"us":        RegionUSA,
	"uk":        RegionUK,
	"england":   RegionUK,
	"britain":   RegionUK,
	"uae":       RegionUAE,
	"emirates":  RegionUAE,
	"europe":    RegionEurope,
	"germany":   RegionEurope,
	"france":    RegionEurope,
	"japan":     RegionJapan,
	"australia": RegionAustralia,
	"canada":    RegionCanada,
}

// countryLabel is the display name per region.
var countryLabel = map[Region]string{
	RegionIndia:     "India",
	RegionUSA:       "USA",
	RegionUK:        "UK",
	RegionUAE:       "UAE",
	RegionEurope:    "Europe",
	RegionJapan:     "Japan",
	RegionAustralia: "Australia",
	RegionCanada:    "Canada",
	RegionGlobal:    "Global",
}

// cityCoordinates gives lat/lon for cities the local-stores fetcher can query.
var cityCoordinates = map[string][2]float64{
	"mumbai":        {19.0760, 72.8777},
	"delhi":         {28.6139, 77.2090},
	"bangalore":     {12.9716, 77.5946},
	"bengaluru":     {12.9716, 77.5946},
	"chennai":       {13.0827, 80.2707},
	"hyderabad":     {17.3850, 78.4867},
	"kolkata":       {22.5726, 88.3639},
	"pune":          {18.5204, 73.8567},
	"ahmedabad":     {23.0225, 72.5714},
	"new york":      {40.7128, -74.0060},
	"los angeles":   {34.0522, -118.2437},
	"chicago":       {41.8781, -87.6298},
	"houston":       {29.7604, -95.3698},
	"san francisco": {37.7749, -122.4194},
	"london":        {51.5074, -0.1278},
	"manchester":    {53.4808, -2.2426},
	"birmingham":    {52.4862, -1.8904},
	"dubai":         {25.2048, 55.2708},
	"abu dhabi":     {24.4539, 54.3773},
	"tokyo":         {35.6762, 139.6503},
	"sydney":        {-33.8688, 151.2093},
	"melbourne":     {-37.8136, 144.9631},
	"toronto":       {43.6532, -79.3832},
	"vancouver":     {49.2827, -123.1207},
	"paris":         {48.8566, 2.3522},
	"berlin":        {52.5200, 13.4050},
}

// Coordinates returns the lat/lon of a known city.
func Coordinates(city string) (lat, lon float64, ok bool) {
	c, found := cityCoordinates[city]
	if !found {
		return 0, 0, false
	}
	return c[0], c[1], true
}
