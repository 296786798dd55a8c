package eldin

import (
	"context"
	"time"
)

// DefaultAuthority is assigned to documents whose frontmatter does not
// declare an authority weight.
const DefaultAuthority = 0.5

// Document represents an indexed markdown document on the provider side.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Date        string    `json:"date"`
	Authority   float64   `json:"authority"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	return nil
}

// Candidate converts the document to its search-result representation.
func (d *Document) Candidate() Candidate {
	return Candidate{
		DocID:     d.ID,
		Title:     d.Title,
		Summary:   d.Summary,
		Recency:   d.Date,
		Authority: d.Authority,
	}
}

// DocumentService represents a service for managing indexed documents.
type DocumentService interface {
	// CreateDocument adds a document to the index, replacing any existing
	// document with the same ID.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// SearchDocuments performs ranked full-text search over the index.
	// An empty or unmatchable query returns no candidates.
	SearchDocuments(ctx context.Context, q string, topN int) ([]Candidate, error)

	// CountDocuments returns the number of indexed documents.
	CountDocuments(ctx context.Context) (int, error)

	// DeleteAllDocuments clears the index ahead of a wholesale rebuild.
	DeleteAllDocuments(ctx context.Context) error
}
