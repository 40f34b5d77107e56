package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageindex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pageindex.DocumentService = (*DocumentService)(nil)

// DocumentService implements pageindex.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// HashIndex computes an xxHash fingerprint of an outline, covering the
// structure and every node's text. Identical outlines hash identically.
func HashIndex(idx *pageindex.Index) string {
	d := xxhash.New()
	idx.Walk(func(n *pageindex.Node) bool {
		for _, s := range []string{n.ID, n.Title, n.Summary, n.Content, strings.Join(n.CrossReferences, ",")} {
			_, _ = d.WriteString(s)
			_, _ = d.Write([]byte{0})
		}
		for _, c := range n.Children {
			_, _ = d.WriteString(c.ID)
			_, _ = d.Write([]byte{1})
		}
		return true
	})
	return hex.EncodeToString(d.Sum(nil))
}

// CreateDocument stores the document and its outline in one transaction.
// The outline's own metadata is merged under doc.Metadata.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *pageindex.Document, idx *pageindex.Index) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if idx == nil {
		return pageindex.Errorf(pageindex.EINVALID, "document index required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE name = ?", doc.Name).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return pageindex.Errorf(pageindex.ECONFLICT, "document %q already exists", doc.Name)
	}

	metadata := make(map[string]string, len(idx.Metadata)+len(doc.Metadata))
	for k, v := range idx.Metadata {
		metadata[k] = v
	}
	for k, v := range doc.Metadata {
		metadata[k] = v
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	doc.ContentHash = HashIndex(idx)
	doc.NodeCount = idx.Len()
	doc.Metadata = metadata

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, type, source_path, content_hash, node_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, string(doc.Type), doc.SourcePath, doc.ContentHash, doc.NodeCount,
		formatTime(doc.CreatedAt)); err != nil {
		return err
	}

	for k, v := range metadata {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO document_metadata (document_id, key, value) VALUES (?, ?, ?)",
			doc.ID, k, v); err != nil {
			return err
		}
	}

	if err := insertNodes(ctx, tx, doc.ID, idx); err != nil {
		return err
	}

	return tx.Commit()
}

func insertNodes(ctx context.Context, tx *sql.Tx, documentID string, idx *pageindex.Index) error {
	var (
		seq int
		err error
	)
	idx.Walk(func(n *pageindex.Node) bool {
		var parentID sql.NullString
		if p, perr := idx.Parent(n.ID); perr == nil && p != nil {
			parentID = sql.NullString{String: p.ID, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO nodes (document_id, id, parent_id, seq, level, title, summary, content)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, documentID, n.ID, parentID, seq, n.Level, n.Title, n.Summary, n.Content)
		if err != nil {
			return false
		}
		seq++

		for i, ref := range n.CrossReferences {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cross_references (document_id, node_id, position, target_id)
				VALUES (?, ?, ?, ?)
			`, documentID, n.ID, i, ref)
			if err != nil {
				return false
			}
		}
		return true
	})
	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*pageindex.Document, error) {
	docs, err := s.FindDocuments(ctx, pageindex.DocumentFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, pageindex.Errorf(pageindex.ENOTFOUND, "document not found")
	}
	return docs[0], nil
}

// FindDocuments retrieves documents matching the filter, ordered by name.
func (s *DocumentService) FindDocuments(ctx context.Context, filter pageindex.DocumentFilter) ([]*pageindex.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, type, source_path, content_hash, node_count, created_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*pageindex.Document
	for rows.Next() {
		var doc pageindex.Document
		var docType, createdAt string

		if err := rows.Scan(&doc.ID, &doc.Name, &docType, &doc.SourcePath, &doc.ContentHash,
			&doc.NodeCount, &createdAt); err != nil {
			return nil, err
		}
		doc.Type = pageindex.DocumentType(docType)

		if doc.CreatedAt, err = parseTime(createdAt, "documents.created_at"); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, doc := range docs {
		if doc.Metadata, err = s.findMetadata(ctx, doc.ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *DocumentService) findMetadata(ctx context.Context, documentID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM document_metadata WHERE document_id = ?", documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		metadata[k] = v
	}
	return metadata, rows.Err()
}

// DeleteDocument permanently removes a document. Its nodes and query
// history are removed by cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pageindex.Errorf(pageindex.ENOTFOUND, "document not found")
	}

	return nil
}

// LoadIndex rebuilds the outline of a stored document. The returned
// index uses the stored document ID.
func (s *DocumentService) LoadIndex(ctx context.Context, id string) (*pageindex.Index, error) {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.findCrossReferences(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, level, title, summary, content
		FROM nodes
		WHERE document_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var root *pageindex.Node
	nodes := make(map[string]*pageindex.Node)
	for rows.Next() {
		var n pageindex.Node
		var parentID sql.NullString
		if err := rows.Scan(&n.ID, &parentID, &n.Level, &n.Title, &n.Summary, &n.Content); err != nil {
			return nil, err
		}
		n.CrossReferences = refs[n.ID]
		nodes[n.ID] = &n

		if !parentID.Valid {
			if root != nil {
				return nil, pageindex.Errorf(pageindex.ESTRUCTURE, "document %q has more than one root", id)
			}
			root = &n
			continue
		}
		// Pre-order storage guarantees the parent was read first.
		parent, ok := nodes[parentID.String]
		if !ok {
			return nil, pageindex.Errorf(pageindex.ESTRUCTURE, "node %q has unknown parent %q", n.ID, parentID.String)
		}
		parent.Children = append(parent.Children, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pageindex.NewIndex(doc.ID, doc.Metadata, root)
}

func (s *DocumentService) findCrossReferences(ctx context.Context, documentID string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id, position, target_id
		FROM cross_references
		WHERE document_id = ?
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type ref struct {
		position int
		target   string
	}
	byNode := make(map[string][]ref)
	for rows.Next() {
		var nodeID string
		var r ref
		if err := rows.Scan(&nodeID, &r.position, &r.target); err != nil {
			return nil, err
		}
		byNode[nodeID] = append(byNode[nodeID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(byNode))
	for nodeID, rs := range byNode {
		sort.Slice(rs, func(i, j int) bool { return rs[i].position < rs[j].position })
		targets := make([]string, len(rs))
		for i, r := range rs {
			targets[i] = r.target
		}
		out[nodeID] = targets
	}
	return out, nil
}
