// Package fs provides file-based persistence: the append-only JSONL audit
// log.
package fs

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fwojciec/eldin"
)

// Ensure AuditLog implements eldin.Auditor at compile time.
var _ eldin.Auditor = (*AuditLog)(nil)

// AuditLog records query events as newline-delimited JSON in an
// append-only file. Appends are serialized by a mutex and written as a
// single O_APPEND write, so concurrent writers never interleave records.
// Write failures are reported to the logger and otherwise swallowed; they
// must never fail the user-facing request.
type AuditLog struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
	f  *os.File
}

// NewAuditLog creates an AuditLog writing to path. The file and its parent
// directory are created lazily on first append.
func NewAuditLog(path string, logger *slog.Logger) *AuditLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLog{path: path, logger: logger}
}

// record is the wire shape of one audit line. Timestamps are fractional
// unix seconds.
type record struct {
	RequestID string            `json:"request_id"`
	TS        float64           `json:"ts"`
	Type      string            `json:"type"`
	User      string            `json:"user"`
	Tenant    string            `json:"tenant"`
	Q         string            `json:"q"`
	Sources   []eldin.SourceRef `json:"sources,omitempty"`
	TTFAMs    int64             `json:"ttfa_ms,omitempty"`
}

// RecordAsk appends an ask event.
func (l *AuditLog) RecordAsk(_ context.Context, ev eldin.AskEvent) {
	l.append(record{
		RequestID: ev.RequestID,
		TS:        unixSeconds(ev.TS),
		Type:      "ask",
		User:      ev.User,
		Tenant:    ev.Tenant,
		Q:         ev.Q,
	})
}

// RecordAnswer appends an answer event with its citation refs.
func (l *AuditLog) RecordAnswer(_ context.Context, ev eldin.AnswerEvent) {
	l.append(record{
		RequestID: ev.RequestID,
		TS:        unixSeconds(ev.TS),
		Type:      "answer",
		User:      ev.User,
		Tenant:    ev.Tenant,
		Q:         ev.Q,
		Sources:   ev.Sources,
		TTFAMs:    ev.TTFAMs,
	})
}

// Close closes the underlying file if it was opened.
func (l *AuditLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

func unixSeconds(ts time.Time) float64 {
	return float64(ts.UnixNano()) / 1e9
}

func (l *AuditLog) append(rec record) {
	line, err := json.Marshal(rec)
	if err != nil {
		l.logger.Error("audit marshal failed", "err", err)
		return
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		if dir := filepath.Dir(l.path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				l.logger.Error("audit directory create failed", "path", l.path, "err", err)
				return
			}
		}
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			l.logger.Error("audit open failed", "path", l.path, "err", err)
			return
		}
		l.f = f
	}

	if _, err := l.f.Write(line); err != nil {
		l.logger.Error("audit write failed", "path", l.path, "err", err)
	}
}
