package retrieve_test

import (
	"testing"

	"github.com/fwojciec/eldin"
	"github.com/fwojciec/eldin/retrieve"
	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	t.Parallel()

	t.Run("one source, two lines", func(t *testing.T) {
		t.Parallel()

		sources := []eldin.Source{
			{Excerpt: "Revenue grew 12%.\nDriven by subscriptions.\nThird line ignored."},
		}

		got := retrieve.Synthesize(sources)

		assert.Equal(t, "Key findings:\n - Revenue grew 12%. Driven by subscriptions.\n\nSee citations for exact passages.", got)
	})

	t.Run("skips blank lines when collecting the first two", func(t *testing.T) {
		t.Parallel()

		sources := []eldin.Source{
			{Excerpt: "\n\n  First finding.  \n\n  Second finding.  \n"},
		}

		got := retrieve.Synthesize(sources)

		assert.Equal(t, "Key findings:\n - First finding. Second finding.\n\nSee citations for exact passages.", got)
	})

	t.Run("one bullet per source in order", func(t *testing.T) {
		t.Parallel()

		sources := []eldin.Source{
			{Excerpt: "Alpha."},
			{Excerpt: "Beta."},
		}

		got := retrieve.Synthesize(sources)

		assert.Equal(t, "Key findings:\n - Alpha.\n - Beta.\n\nSee citations for exact passages.", got)
	})

	t.Run("deterministic for fixed input", func(t *testing.T) {
		t.Parallel()

		sources := []eldin.Source{{Excerpt: "Stable output.\nEvery time."}}

		assert.Equal(t, retrieve.Synthesize(sources), retrieve.Synthesize(sources))
	})
}
