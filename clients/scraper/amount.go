package scraper

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount canonicalizes a scraped money string to a plain decimal
// with two fraction digits. Strings that do not contain a parseable amount
// (e.g. "N/A") are returned trimmed but otherwise untouched.
func NormalizeAmount(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	cleaned := trimmed
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ',', ' ', ' ':
			return -1
		}
		return r
	}, cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return trimmed
	}
	if negative {
		d = d.Neg()
	}

	return d.StringFixed(2)
}
