package mock

import (
	"context"

	"github.com/fwojciec/eldin"
)

var _ eldin.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of eldin.DocumentService.
type DocumentService struct {
	CreateDocumentFn     func(ctx context.Context, doc *eldin.Document) error
	FindDocumentByIDFn   func(ctx context.Context, id string) (*eldin.Document, error)
	SearchDocumentsFn    func(ctx context.Context, q string, topN int) ([]eldin.Candidate, error)
	CountDocumentsFn     func(ctx context.Context) (int, error)
	DeleteAllDocumentsFn func(ctx context.Context) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *eldin.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*eldin.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) SearchDocuments(ctx context.Context, q string, topN int) ([]eldin.Candidate, error) {
	return s.SearchDocumentsFn(ctx, q, topN)
}

func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}

func (s *DocumentService) DeleteAllDocuments(ctx context.Context) error {
	return s.DeleteAllDocumentsFn(ctx)
}
