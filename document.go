package pageindex

import (
	"context"
	"time"
)

// Document is a stored, indexed document.
type Document struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        DocumentType      `json:"type"`
	SourcePath  string            `json:"source_path"`
	ContentHash string            `json:"content_hash"`
	NodeCount   int               `json:"node_count"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "document name required")
	}
	if d.Type == "" {
		return Errorf(EINVALID, "document type required")
	}
	return nil
}

// DocumentService represents a service for managing indexed documents.
type DocumentService interface {
	// CreateDocument stores a document together with its outline.
	// Returns ECONFLICT if a document with the same name exists.
	CreateDocument(ctx context.Context, doc *Document, idx *Index) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document, its outline and its
	// query history.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// LoadIndex rebuilds the stored outline of a document.
	// Returns ENOTFOUND if document does not exist.
	LoadIndex(ctx context.Context, id string) (*Index, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID   *string       `json:"id"`
	Name *string       `json:"name"`
	Type *DocumentType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
