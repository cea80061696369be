package source

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches up to seven digits (with embedded spaces) before a euro sign,
// e.g. "1 234 €" or "450€".
var priceRE = regexp.MustCompile(`(\d[\d\s]{0,6})\s*€`)

// ParsePrice extracts a numeric price from display text like "1 234 €".
// It returns nil when no price can be extracted; the matcher then applies
// the unknown-price policy.
func ParsePrice(text string) *float64 {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, " ", " ")

	m := priceRE.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	digits := strings.ReplaceAll(m[1], " ", "")
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &v
}
