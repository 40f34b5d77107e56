package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pageindex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pageindex.QueryService = (*QueryService)(nil)

// QueryService implements pageindex.QueryService using SQLite. Results
// are stored as their JSON wire form so the audit log shows exactly what
// the caller received.
type QueryService struct {
	db *DB
}

// NewQueryService creates a new QueryService.
func NewQueryService(db *DB) *QueryService {
	return &QueryService{db: db}
}

// CreateQuery records a query result with a generated ID and timestamp.
func (s *QueryService) CreateQuery(ctx context.Context, rec *pageindex.QueryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE id = ?", rec.DocumentID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return pageindex.Errorf(pageindex.ENOTFOUND, "document not found")
	}

	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode query result: %w", err)
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO queries (id, document_id, query, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.DocumentID, rec.Query, string(result), formatTime(rec.CreatedAt))
	return err
}

// FindQueryByID retrieves a query record by ID.
func (s *QueryService) FindQueryByID(ctx context.Context, id string) (*pageindex.QueryRecord, error) {
	recs, err := s.find(ctx, " AND id = ?", []any{id}, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, pageindex.Errorf(pageindex.ENOTFOUND, "query not found")
	}
	return recs[0], nil
}

// FindQueries retrieves records matching the filter, newest first.
func (s *QueryService) FindQueries(ctx context.Context, filter pageindex.QueryFilter) ([]*pageindex.QueryRecord, error) {
	var where string
	var args []any
	if filter.DocumentID != nil {
		where = " AND document_id = ?"
		args = append(args, *filter.DocumentID)
	}
	return s.find(ctx, where, args, filter.Limit, filter.Offset)
}

func (s *QueryService) find(ctx context.Context, where string, args []any, limit, offset int) ([]*pageindex.QueryRecord, error) {
	var query strings.Builder
	query.WriteString("SELECT id, document_id, query, result, created_at FROM queries WHERE 1=1")
	query.WriteString(where)
	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*pageindex.QueryRecord
	for rows.Next() {
		var rec pageindex.QueryRecord
		var result, createdAt string

		if err := rows.Scan(&rec.ID, &rec.DocumentID, &rec.Query, &result, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to decode query result: %w", err)
		}
		if rec.CreatedAt, err = parseTime(createdAt, "queries.created_at"); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
