package mock

import (
	"context"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of jursearch.DocumentService.
type DocumentService struct {
	SaveDocumentFn     func(ctx context.Context, doc *jursearch.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*jursearch.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter jursearch.DocumentFilter) ([]*jursearch.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) SaveDocument(ctx context.Context, doc *jursearch.Document) error {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*jursearch.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter jursearch.DocumentFilter) ([]*jursearch.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
