package mock

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of pageindex.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *pageindex.Document, idx *pageindex.Index) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*pageindex.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter pageindex.DocumentFilter) ([]*pageindex.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
	LoadIndexFn        func(ctx context.Context, id string) (*pageindex.Index, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *pageindex.Document, idx *pageindex.Index) error {
	return s.CreateDocumentFn(ctx, doc, idx)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*pageindex.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter pageindex.DocumentFilter) ([]*pageindex.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) LoadIndex(ctx context.Context, id string) (*pageindex.Index, error) {
	return s.LoadIndexFn(ctx, id)
}
