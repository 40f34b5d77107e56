package pageindex

import "context"

// Source identifies a node whose content contributed to an answer.
type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PathEntry is one position in a navigation path.
type PathEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Action Action `json:"action"`
}

// TraceEntry records one action taken during navigation. Entries are
// appended and never modified.
//
// Step is unique among applied decisions. A retry entry is not a step: it
// carries the number of the step being retried, so it shares Step with
// the decision that eventually fills that step. Order within the trace
// disambiguates them.
type TraceEntry struct {
	Step      int    `json:"step"`
	Action    Action `json:"action"`
	NodeID    string `json:"node_id"`
	Rationale string `json:"rationale"`

	// CrossReference marks a backtrack that jumped along a cross-reference
	// or to a previously visited node instead of returning to an ancestor.
	CrossReference bool `json:"cross_reference,omitempty"`

	// NoContent marks an extract on a node with no content of its own.
	NoContent bool `json:"no_content,omitempty"`
}

// QueryResult is the outcome of navigating a document for one query.
type QueryResult struct {
	Query          string       `json:"query"`
	DocumentID     string       `json:"document_id"`
	Answer         string       `json:"answer"`
	Sources        []Source     `json:"sources"`
	NavigationPath []PathEntry  `json:"navigation_path"`
	Confidence     float64      `json:"confidence"`
	Steps          int          `json:"steps"`
	Trace          []TraceEntry `json:"trace"`

	// Truncated is set when the step limit stopped navigation.
	Truncated bool `json:"truncated"`

	// Degraded is set when the oracle or synthesizer failed and the
	// result was produced from a fallback.
	Degraded bool `json:"degraded"`
}

// Navigator answers a query by navigating an index.
type Navigator interface {
	Navigate(ctx context.Context, idx *Index, query string) (*QueryResult, error)
}

// Asker answers questions about stored documents.
type Asker interface {
	// Ask answers a natural language question about a document.
	// Returns ENOTFOUND if the document does not exist.
	Ask(ctx context.Context, documentID string, question string) (*QueryResult, error)
}
