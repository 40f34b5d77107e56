package navigate

import (
	"context"
	"strings"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Asker = (*Asker)(nil)

// Asker answers questions about stored documents and records every
// completed answer in the query log.
type Asker struct {
	documents pageindex.DocumentService
	queries   pageindex.QueryService
	navigator pageindex.Navigator
}

// NewAsker creates a new Asker. queries may be nil to skip recording.
func NewAsker(documents pageindex.DocumentService, queries pageindex.QueryService, navigator pageindex.Navigator) *Asker {
	return &Asker{documents: documents, queries: queries, navigator: navigator}
}

// Ask loads the document's outline and navigates it to answer question.
func (a *Asker) Ask(ctx context.Context, documentID, question string) (*pageindex.QueryResult, error) {
	if documentID == "" {
		return nil, pageindex.Errorf(pageindex.EINVALID, "document ID required")
	}
	if strings.TrimSpace(question) == "" {
		return nil, pageindex.Errorf(pageindex.EINVALID, "question required")
	}

	idx, err := a.documents.LoadIndex(ctx, documentID)
	if err != nil {
		return nil, err
	}

	res, err := a.navigator.Navigate(ctx, idx, question)
	if err != nil {
		return res, err
	}

	if a.queries != nil {
		rec := &pageindex.QueryRecord{DocumentID: documentID, Query: question, Result: res}
		if err := a.queries.CreateQuery(ctx, rec); err != nil {
			return res, err
		}
	}
	return res, nil
}
