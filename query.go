package pageindex

import (
	"context"
	"time"
)

// QueryRecord is an audited query and its full result.
type QueryRecord struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"document_id"`
	Query      string       `json:"query"`
	Result     *QueryResult `json:"result"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Validate returns an error if the record contains invalid fields.
func (r *QueryRecord) Validate() error {
	if r.DocumentID == "" {
		return Errorf(EINVALID, "query document ID required")
	}
	if r.Query == "" {
		return Errorf(EINVALID, "query text required")
	}
	if r.Result == nil {
		return Errorf(EINVALID, "query result required")
	}
	return nil
}

// QueryService stores the audit log of answered queries.
type QueryService interface {
	// CreateQuery records a query result.
	CreateQuery(ctx context.Context, rec *QueryRecord) error

	// FindQueryByID retrieves a query record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindQueryByID(ctx context.Context, id string) (*QueryRecord, error)

	// FindQueries retrieves records matching the filter, newest first.
	FindQueries(ctx context.Context, filter QueryFilter) ([]*QueryRecord, error)
}

// QueryFilter represents a filter for FindQueries.
type QueryFilter struct {
	DocumentID *string `json:"document_id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
