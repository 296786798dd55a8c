package retrieve_test

import (
	"testing"

	"github.com/fwojciec/eldin/retrieve"
	"github.com/stretchr/testify/assert"
)

func TestHeadingScore(t *testing.T) {
	t.Parallel()

	t.Run("empty title scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, retrieve.HeadingScore("revenue growth 2023", ""))
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, retrieve.HeadingScore("", "Revenue Growth"))
	})

	t.Run("disjoint tokens score zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, retrieve.HeadingScore("customer churn metrics", "Supply Chain"))
	})

	t.Run("exact overlap scores near one", func(t *testing.T) {
		t.Parallel()

		// |intersection| = 2, |query tokens| = 2.
		got := retrieve.HeadingScore("revenue growth", "Revenue Growth")

		assert.InDelta(t, 2.0/(2.0+1e-6), got, 1e-12)
		assert.Less(t, got, 1.0)
	})

	t.Run("denominator is the query token count, not the title's", func(t *testing.T) {
		t.Parallel()

		// Title has one token, query has three; overlap is one.
		got := retrieve.HeadingScore("revenue growth 2023", "Revenue")

		assert.InDelta(t, 1.0/(3.0+1e-6), got, 1e-12)
	})

	t.Run("tokenizes case-insensitively on non-word separators", func(t *testing.T) {
		t.Parallel()

		got := retrieve.HeadingScore("Q4-2023, revenue!", "REVENUE (Q4/2023)")

		// Tokens on both sides: {q4, 2023, revenue}.
		assert.InDelta(t, 3.0/(3.0+1e-6), got, 1e-12)
	})

	t.Run("duplicate words count once", func(t *testing.T) {
		t.Parallel()

		got := retrieve.HeadingScore("growth growth growth", "Growth Growth")

		assert.InDelta(t, 1.0/(1.0+1e-6), got, 1e-12)
	})
}
