package retrieve

import (
	"regexp"
	"strings"
)

// scoreEpsilon keeps the scoring denominator non-zero when a query has no
// word tokens.
const scoreEpsilon = 1e-6

var wordRe = regexp.MustCompile(`\w+`)

// HeadingScore scores a section heading against a query by token overlap.
// Both strings are tokenized into lowercase word sets with non-word
// characters as separators. A title with no tokens scores 0. Otherwise the
// score is |query ∩ title| / (|query| + epsilon).
//
// The denominator is deliberately the query token count, not the title
// token count; downstream section selection depends on this asymmetry.
func HeadingScore(query, title string) float64 {
	qTokens := tokenSet(query)
	tTokens := tokenSet(title)
	if len(tTokens) == 0 {
		return 0
	}

	overlap := 0
	for tok := range tTokens {
		if _, ok := qTokens[tok]; ok {
			overlap++
		}
	}

	return float64(overlap) / (float64(len(qTokens)) + scoreEpsilon)
}

func tokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
