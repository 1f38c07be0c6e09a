package download

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// LowMatchScore is the similarity below which a match is reported as doubtful
const LowMatchScore = 0.35

// MatchScore returns the similarity of the matched video title to the
// expected name, from 0 (unrelated) to 1 (identical after normalization)
func MatchScore(expected, matched string) float64 {
	a, b := normalizeTitle(expected), normalizeTitle(matched)
	if a == "" || b == "" {
		return 0
	}

	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// normalizeTitle lowercases s and keeps only letters, digits and single spaces
func normalizeTitle(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}
