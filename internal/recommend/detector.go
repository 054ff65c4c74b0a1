// internal/recommend/detector.go
package recommend

import "strings"

var priceWords = []string{"price", "cost", "charge", "fee", "budget", "how much"}

// IsPriceQuery reports whether the inquiry asks about pricing. Matching is
// substring based, so "costume" counts.
func IsPriceQuery(inquiry string) bool {
	return containsAny(strings.ToLower(inquiry), priceWords)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
