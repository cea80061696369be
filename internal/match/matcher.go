// Package match implements the pure listing-evaluation engine: term-group
// matching, exclusion, price band, and the shipping-signal heuristic.
package match

import (
	"strings"

	domain "github.com/fleawatch/fleawatch/pkg/types"
)

// Evaluate checks one listing against a profile and returns the outcome.
// It is pure and deterministic: same inputs always give the same result.
//
// Checks run in a fixed order and short-circuit on the first failure:
// exclusion, model whitelist, term groups, price band, shipping signal.
// Optional terms never gate the result; hits are reported as tags.
//
// Profile term sets are expected to be normalized already (config does this
// at load time); listing text is normalized here.
func Evaluate(l domain.Listing, p *domain.Profile) domain.MatchResult {
	res := domain.MatchResult{Listing: l}
	text := Normalize(l.Title + " " + l.Description)

	if containsAny(text, p.TermsExclude) {
		res.Reason = domain.ReasonExcluded
		return res
	}

	if len(p.Models) > 0 && !containsAny(text, p.Models) {
		res.Reason = domain.ReasonModelMismatch
		return res
	}

	// Every group must contribute at least one term (AND of ORs).
	for _, group := range p.TermsAny {
		if !containsAny(text, group) {
			res.Reason = domain.ReasonTermsMismatch
			return res
		}
	}

	if reason := checkPrice(&l, p); reason != "" {
		res.Reason = reason
		return res
	}

	if p.RequireShipping && !shippingSignal(text, p) {
		res.Reason = domain.ReasonNoShippingSignal
		return res
	}

	res.Matched = true
	res.Tags = optionalTags(text, p.TermsOptional)
	return res
}

// checkPrice applies the inclusive price band. A listing without a usable
// price is rejected by default so a parser gap can only suppress a
// notification, never produce a false positive.
func checkPrice(l *domain.Listing, p *domain.Profile) domain.Reason {
	if !l.PriceKnown() {
		if p.PriceUnknown == domain.PriceUnknownAccept {
			return ""
		}
		return domain.ReasonPriceUnknown
	}
	if *l.Price < p.PriceMin || *l.Price > p.PriceMax {
		return domain.ReasonPriceOutOfRange
	}
	return ""
}

// shippingSignal reports whether the text carries a shipping signal: at
// least one positive term (vacuously true when none are configured) and no
// negative term.
func shippingSignal(text string, p *domain.Profile) bool {
	if len(p.ShippingPositive) > 0 && !containsAny(text, p.ShippingPositive) {
		return false
	}
	return !containsAny(text, p.ShippingNegative)
}

func optionalTags(text string, optional []string) []string {
	var tags []string
	for _, term := range optional {
		if strings.Contains(text, term) {
			tags = append(tags, term)
		}
	}
	return tags
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
