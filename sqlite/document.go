package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/eldin"
)

// Compile-time interface verification.
var _ eldin.DocumentService = (*DocumentService)(nil)

var queryTokenRe = regexp.MustCompile(`\w+`)

// DocumentService implements eldin.DocumentService using SQLite with an
// FTS5 full-text index.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument adds a document to the index, replacing any existing
// document with the same ID.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *eldin.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.IndexedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	// DELETE + INSERT rather than INSERT OR REPLACE so the FTS sync
	// triggers observe both halves of the replacement.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, doc.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, summary, date, authority, content, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.Summary, doc.Date, doc.Authority, doc.Content, doc.ContentHash,
		doc.IndexedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*eldin.Document, error) {
	var doc eldin.Document
	var indexedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, summary, date, authority, content, content_hash, indexed_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Title, &doc.Summary, &doc.Date, &doc.Authority,
		&doc.Content, &doc.ContentHash, &indexedAt)

	if err == sql.ErrNoRows {
		return nil, eldin.Errorf(eldin.ENOTFOUND, "document %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	doc.IndexedAt, parseErr = time.Parse(time.RFC3339, indexedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse indexed_at: %w", parseErr)
	}

	return &doc, nil
}

// SearchDocuments performs ranked full-text search over title, summary and
// content. Results are ordered best-first by bm25.
func (s *DocumentService) SearchDocuments(ctx context.Context, q string, topN int) ([]eldin.Candidate, error) {
	match := ftsQuery(q)
	if match == "" {
		return nil, nil
	}
	if topN <= 0 {
		topN = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.title, d.summary, d.date, d.authority
		FROM documents_fts f
		JOIN documents d ON d.rowid = f.rowid
		WHERE documents_fts MATCH ?
		ORDER BY bm25(documents_fts)
		LIMIT ?
	`, match, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []eldin.Candidate
	for rows.Next() {
		var c eldin.Candidate
		if err := rows.Scan(&c.DocID, &c.Title, &c.Summary, &c.Recency, &c.Authority); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// CountDocuments returns the number of indexed documents.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// DeleteAllDocuments clears the index ahead of a wholesale rebuild.
func (s *DocumentService) DeleteAllDocuments(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}

// ftsQuery sanitizes a free-text query into FTS5 MATCH syntax. Each word
// token is quoted so user punctuation cannot be parsed as query operators.
// Tokens combine with OR: any matching term recalls a document, and bm25
// ranks documents matching more terms higher.
func ftsQuery(q string) string {
	tokens := queryTokenRe.FindAllString(strings.ToLower(q), -1)
	if len(tokens) == 0 {
		return ""
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + tok + `"`
	}
	return strings.Join(quoted, " OR ")
}
