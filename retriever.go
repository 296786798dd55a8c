package eldin

import "context"

// Candidate represents a document returned by provider search. DocID is the
// join key for all subsequent calls. Recency and Authority are passed
// through for display and future ranking; the orchestration logic does not
// consume them.
type Candidate struct {
	DocID     string  `json:"doc_id"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Recency   string  `json:"recency"`
	Authority float64 `json:"authority"`
}

// Section identifies an addressable unit within a document. ID is unique
// within a document, not globally. Anchor is a stable fragment identifier
// usable to build a citation URL.
type Section struct {
	ID     string `json:"section_id"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Span is a character-range request into one section's text.
type Span struct {
	SectionID string `json:"section_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// Excerpt is the realized text for a span, with enough information to both
// display and re-cite it.
type Excerpt struct {
	SectionID   string `json:"section_id"`
	Text        string `json:"text"`
	Anchor      string `json:"anchor"`
	CitationURL string `json:"citation_url"`
}

// Retriever exposes the provider's retrieval primitives. All operations are
// idempotent and side-effect free from the caller's view, invoked
// synchronously over a network boundary.
type Retriever interface {
	// SearchDocuments performs full-text search over the corpus. The
	// provider-defined ranking order must be preserved by callers, not
	// re-sorted. Filters are reserved for future narrowing; nil is valid.
	SearchDocuments(ctx context.Context, q string, filters map[string]string, topN int) ([]Candidate, error)

	// ListSections returns the ordered section headings of a document.
	// Returns ENOTFOUND if the document is unknown.
	ListSections(ctx context.Context, docID string) ([]Section, error)

	// GetExcerpts realizes the requested spans, each clamped to maxChars.
	// It may return fewer excerpts than spans requested; missing entries
	// mean no text is available for that span and must be tolerated.
	// The second return value is the total characters consumed.
	GetExcerpts(ctx context.Context, docID string, spans []Span, maxChars int) ([]Excerpt, int, error)

	// CitationURL builds a stable citation link for an anchor within a
	// document.
	CitationURL(ctx context.Context, docID, anchor string) (string, error)
}
