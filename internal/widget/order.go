package widget

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMatches returns a sorted copy of words: longer words first, words of
// equal length in the locale's collation order. Byte order breaks collation
// ties so the result does not depend on input order.
func SortMatches(tag language.Tag, words []string) []string {
	sorted := slices.Clone(words)
	coll := collate.New(tag)
	slices.SortStableFunc(sorted, func(a, b string) int {
		la, lb := CodeUnits(a), CodeUnits(b)
		if la != lb {
			return lb - la
		}
		if c := coll.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return sorted
}
