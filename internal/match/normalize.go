package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// asciiFold decomposes accented characters (NFKD) and strips the combining
// marks plus anything left outside ASCII, so "Boîte à gâteaux" and
// "boite a gateaux" compare equal.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Normalize lowercases s, folds accents to ASCII, and collapses whitespace
// runs to single spaces. All matcher comparisons operate on normalized text.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return whitespaceRE.ReplaceAllString(folded, " ")
}

// NormalizeTerms normalizes every term, dropping entries that normalize to
// the empty string.
func NormalizeTerms(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeGroups normalizes every term group, dropping groups that end up
// empty. Group order is preserved.
func NormalizeGroups(groups [][]string) [][]string {
	if len(groups) == 0 {
		return nil
	}
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		if n := NormalizeTerms(g); n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
