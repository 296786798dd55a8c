package retrieve

// Default excerpt character caps. Both are externally configurable.
const (
	DefaultPerSectionCap = 600
	DefaultTotalCap      = 1200
)

// Budget enforces a per-section character cap and a global total cap across
// all excerpt fetches of one request. Not safe for concurrent use; each
// request constructs its own.
type Budget struct {
	perSection int
	total      int
	consumed   int
}

// NewBudget creates a Budget with the given limits. Non-positive limits
// fall back to the defaults.
func NewBudget(perSection, total int) *Budget {
	if perSection <= 0 {
		perSection = DefaultPerSectionCap
	}
	if total <= 0 {
		total = DefaultTotalCap
	}
	return &Budget{perSection: perSection, total: total}
}

// Allowance returns the character allowance for the next excerpt:
// min(per-section cap, total cap - consumed).
func (b *Budget) Allowance() int {
	remaining := b.total - b.consumed
	if b.perSection < remaining {
		return b.perSection
	}
	return remaining
}

// Exhausted reports whether the budget permits no further fetches. Once
// exhausted the fetch loop must terminate, not merely skip.
func (b *Budget) Exhausted() bool {
	return b.Allowance() <= 0
}

// Consume records the actual length of a returned excerpt, which may be
// less than the allowance when the underlying section text is shorter than
// requested.
func (b *Budget) Consume(n int) {
	b.consumed += n
}

// Consumed returns the total characters consumed so far.
func (b *Budget) Consumed() int {
	return b.consumed
}
