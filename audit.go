package eldin

import (
	"context"
	"time"
)

// AskEvent records a question at request entry.
type AskEvent struct {
	RequestID string
	TS        time.Time
	User      string
	Tenant    string
	Q         string
}

// SourceRef identifies one cited excerpt in an answer event.
type SourceRef struct {
	DocID  string `json:"doc_id"`
	Anchor string `json:"anchor"`
	Chars  int    `json:"chars"`
}

// AnswerEvent records a completed answer with its citations.
type AnswerEvent struct {
	RequestID string
	TS        time.Time
	User      string
	Tenant    string
	Q         string
	Sources   []SourceRef
	TTFAMs    int64
}

// Auditor records query events to a durable, append-only sink. Recording
// must never fail the user-facing request; implementations swallow write
// errors after reporting them to a diagnostic channel.
type Auditor interface {
	RecordAsk(ctx context.Context, ev AskEvent)
	RecordAnswer(ctx context.Context, ev AnswerEvent)
}
