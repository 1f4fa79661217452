package widget

import (
	"strings"
	"unicode/utf16"
)

const (
	MinLength = 4
	MaxLength = 40
)

// runeUnits is the number of UTF-16 code units r occupies.
func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// CodeUnits measures s in UTF-16 code units, the unit browsers count input length in.
func CodeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// TooShort reports whether a candidate word must be rejected before submission.
func TooShort(s string, minLength int) bool {
	return CodeUnits(s) < minLength
}

// Normalize truncates s to maxLength code units without splitting a character
// and lower-cases the result.
func Normalize(s string, maxLength int) string {
	n := 0
	for i, r := range s {
		w := runeUnits(r)
		if n+w > maxLength {
			s = s[:i]
			break
		}
		n += w
	}
	return strings.ToLower(s)
}
