// Package slog provides logging decorators for eldin domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/eldin"
)

// Ensure Retriever implements eldin.Retriever.
var _ eldin.Retriever = (*Retriever)(nil)

// Retriever wraps an eldin.Retriever with per-call logging.
type Retriever struct {
	next   eldin.Retriever
	logger *slog.Logger
}

// NewRetriever creates a new logging Retriever.
func NewRetriever(next eldin.Retriever, logger *slog.Logger) *Retriever {
	return &Retriever{next: next, logger: logger}
}

// SearchDocuments delegates to the wrapped retriever and logs the call.
func (r *Retriever) SearchDocuments(ctx context.Context, q string, filters map[string]string, topN int) ([]eldin.Candidate, error) {
	begin := time.Now()
	docs, err := r.next.SearchDocuments(ctx, q, filters, topN)
	r.log("search documents", err,
		"query", q,
		"hits", len(docs),
		"duration", time.Since(begin),
	)
	return docs, err
}

// ListSections delegates to the wrapped retriever and logs the call.
func (r *Retriever) ListSections(ctx context.Context, docID string) ([]eldin.Section, error) {
	begin := time.Now()
	sections, err := r.next.ListSections(ctx, docID)
	r.log("list sections", err,
		"doc_id", docID,
		"sections", len(sections),
		"duration", time.Since(begin),
	)
	return sections, err
}

// GetExcerpts delegates to the wrapped retriever and logs the call.
func (r *Retriever) GetExcerpts(ctx context.Context, docID string, spans []eldin.Span, maxChars int) ([]eldin.Excerpt, int, error) {
	begin := time.Now()
	excerpts, consumed, err := r.next.GetExcerpts(ctx, docID, spans, maxChars)
	r.log("get excerpts", err,
		"doc_id", docID,
		"spans", len(spans),
		"max_chars", maxChars,
		"consumed", consumed,
		"duration", time.Since(begin),
	)
	return excerpts, consumed, err
}

// CitationURL delegates to the wrapped retriever and logs the call.
func (r *Retriever) CitationURL(ctx context.Context, docID, anchor string) (string, error) {
	begin := time.Now()
	url, err := r.next.CitationURL(ctx, docID, anchor)
	r.log("citation url", err,
		"doc_id", docID,
		"anchor", anchor,
		"duration", time.Since(begin),
	)
	return url, err
}

func (r *Retriever) log(msg string, err error, args ...any) {
	if err != nil {
		r.logger.Error(msg, append(args, "err", err)...)
		return
	}
	r.logger.Info(msg, args...)
}
