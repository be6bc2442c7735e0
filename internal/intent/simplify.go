// internal/intent/simplify.go
package intent

import "strings"

// Filler words stripped when reducing a query to its product core.
var fillerWords = map[string]bool{
	"price": true, "prices": true, "cost": true, "rate": true, "rates": true,
	"buy": true, "purchase": true, "order": true, "find": true, "search": true,
	"cheap": true, "cheapest": true, "best": true, "good": true, "top": true,
	"in": true, "at": true, "near": true, "for": true, "of": true, "the": true, "to": true,
	"a": true, "an": true, "me": true, "i": true, "want": true, "need": true,
	"under": true, "below": true, "above": true, "around": true, "with": true,
}

// SimplifyQuery strips filler and location words, leaving the product core.
// "best laptop price in mumbai" becomes "laptop".
func SimplifyQuery(query string) string {
	kept := []string{}
	for _, f := range strings.Fields(strings.ToLower(query)) {
		w := strings.Trim(f, ".,!?")
		if w == "" || fillerWords[w] || isNumeric(w) || isLocationWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// ExtractProductType returns the matched category keyword, or "general".
func ExtractProductType(query string) string {
	q := strings.ToLower(query)
	for _, cat := range categoryTable {
		for _, kw := range cat.Keywords {
			if containsWord(q, kw) {
				return kw
			}
		}
	}
	return "general"
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Location words are stripped from the simplified query since the location
// resolver handles them separately.
var locationWords = map[string]bool{
	"mumbai": true, "delhi": true, "bangalore": true, "bengaluru": true,
	"chennai": true, "hyderabad": true, "kolkata": true, "pune": true,
	"ahmedabad": true, "london": true, "manchester": true, "birmingham": true,
	"dubai": true, "tokyo": true, "sydney": true, "melbourne": true,
	"toronto": true, "vancouver": true, "paris": true, "berlin": true,
	"india": true, "usa": true, "america": true, "uk": true, "uae": true,
	"europe": true, "japan": true, "australia": true, "canada": true,
	"england": true, "britain": true, "germany": true, "france": true,
	"emirates": true,
	// multi-word city fragments
	"new": true, "york": true, "los": true, "angeles": true, "chicago": true,
	"houston": true, "san": true, "francisco": true, "abu": true, "dhabi": true,
}

func isLocationWord(w string) bool {
	return locationWords[w]
}
