package main_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/mock"
	"github.com/stretchr/testify/require"
)

// testIndex returns a two-section manual outline.
func testIndex(t *testing.T) *pageindex.Index {
	t.Helper()

	root := &pageindex.Node{
		ID:    "root",
		Title: "Pump Manual",
		Children: []*pageindex.Node{
			{ID: "safety", Title: "Safety", Level: 1, Content: "Wear gloves."},
			{ID: "maintenance", Title: "Maintenance", Level: 1, Summary: "Service intervals", Content: "Replace the filter every 500 hours."},
		},
	}
	idx, err := pageindex.NewIndex("doc-1", map[string]string{pageindex.MetadataDocumentType: "sop"}, root)
	require.NoError(t, err)
	return idx
}

// documents returns a DocumentService holding one document named "manual".
func documents(t *testing.T) *mock.DocumentService {
	t.Helper()

	idx := testIndex(t)
	doc := &pageindex.Document{
		ID:       "doc-1",
		Name:     "manual",
		Type:     pageindex.DocumentTypeSOP,
		Metadata: map[string]string{pageindex.MetadataDocumentType: "sop"},
	}
	return &mock.DocumentService{
		FindDocumentsFn: func(_ context.Context, filter pageindex.DocumentFilter) ([]*pageindex.Document, error) {
			if filter.Name != nil && *filter.Name == "manual" {
				return []*pageindex.Document{doc}, nil
			}
			return []*pageindex.Document{}, nil
		},
		LoadIndexFn: func(_ context.Context, id string) (*pageindex.Index, error) {
			if id != "doc-1" {
				return nil, pageindex.Errorf(pageindex.ENOTFOUND, "document %q not found", id)
			}
			return idx, nil
		},
	}
}

// maintenanceOracle descends to the maintenance section, extracts it and
// completes, whatever the question.
func maintenanceOracle() *mock.Oracle {
	return &mock.Oracle{
		JudgeFn: func(_ context.Context, _ string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
			switch {
			case node.ID == "root" && len(nav.Extracted) == 0:
				return pageindex.Descend("maintenance", "service intervals live here"), nil
			case node.ID == "maintenance" && len(nav.Extracted) == 0:
				return pageindex.Extract("states the interval"), nil
			default:
				return pageindex.Complete("answered"), nil
			}
		},
	}
}

// recorder is a QueryService that keeps created records.
type recorder struct {
	mu   sync.Mutex
	recs []*pageindex.QueryRecord
}

func (r *recorder) service() *mock.QueryService {
	return &mock.QueryService{
		CreateQueryFn: func(_ context.Context, rec *pageindex.QueryRecord) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.recs = append(r.recs, rec)
			return nil
		},
	}
}

func (r *recorder) records() []*pageindex.QueryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*pageindex.QueryRecord(nil), r.recs...)
}
