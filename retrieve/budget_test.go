package retrieve_test

import (
	"testing"

	"github.com/fwojciec/eldin/retrieve"
	"github.com/stretchr/testify/assert"
)

func TestBudget(t *testing.T) {
	t.Parallel()

	t.Run("allowance is the per-section cap while budget remains", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(600, 1200)

		assert.Equal(t, 600, b.Allowance())
		assert.False(t, b.Exhausted())
	})

	t.Run("allowance shrinks to the remaining total", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(600, 1000)
		b.Consume(600)

		assert.Equal(t, 400, b.Allowance())
	})

	t.Run("exhausted once the total is consumed", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(600, 1200)
		b.Consume(600)
		b.Consume(600)

		assert.True(t, b.Exhausted())
		assert.Equal(t, 1200, b.Consumed())
	})

	t.Run("short excerpts consume only their actual length", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(600, 1200)
		b.Consume(200)

		assert.Equal(t, 600, b.Allowance())
		assert.Equal(t, 200, b.Consumed())
	})

	t.Run("tiny total cap bounds the first allowance", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(600, 10)

		assert.Equal(t, 10, b.Allowance())
		b.Consume(10)
		assert.True(t, b.Exhausted())
	})

	t.Run("non-positive limits fall back to defaults", func(t *testing.T) {
		t.Parallel()

		b := retrieve.NewBudget(0, 0)

		assert.Equal(t, retrieve.DefaultPerSectionCap, b.Allowance())
	})
}
