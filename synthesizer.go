package pageindex

import "context"

// NoAnswer is returned when navigation extracted nothing.
const NoAnswer = "Unable to find relevant information in the document."

// Fragment is text extracted from a node, with provenance.
type Fragment struct {
	NodeID string `json:"node_id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Synthesis is a synthesized answer.
type Synthesis struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// Synthesizer combines extracted fragments into a final answer.
type Synthesizer interface {
	// Synthesize answers query from fragments, which are deduplicated by
	// node and ordered by first extraction. Confidence is in [0,1].
	Synthesize(ctx context.Context, query string, fragments []Fragment) (*Synthesis, error)
}
