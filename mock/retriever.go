package mock

import (
	"context"

	"github.com/fwojciec/eldin"
)

var _ eldin.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of eldin.Retriever.
type Retriever struct {
	SearchDocumentsFn func(ctx context.Context, q string, filters map[string]string, topN int) ([]eldin.Candidate, error)
	ListSectionsFn    func(ctx context.Context, docID string) ([]eldin.Section, error)
	GetExcerptsFn     func(ctx context.Context, docID string, spans []eldin.Span, maxChars int) ([]eldin.Excerpt, int, error)
	CitationURLFn     func(ctx context.Context, docID, anchor string) (string, error)
}

func (r *Retriever) SearchDocuments(ctx context.Context, q string, filters map[string]string, topN int) ([]eldin.Candidate, error) {
	return r.SearchDocumentsFn(ctx, q, filters, topN)
}

func (r *Retriever) ListSections(ctx context.Context, docID string) ([]eldin.Section, error) {
	return r.ListSectionsFn(ctx, docID)
}

func (r *Retriever) GetExcerpts(ctx context.Context, docID string, spans []eldin.Span, maxChars int) ([]eldin.Excerpt, int, error) {
	return r.GetExcerptsFn(ctx, docID, spans, maxChars)
}

func (r *Retriever) CitationURL(ctx context.Context, docID, anchor string) (string, error) {
	return r.CitationURLFn(ctx, docID, anchor)
}
