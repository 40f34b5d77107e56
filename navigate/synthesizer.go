package navigate

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Synthesizer = ExtractiveSynthesizer{}

// ExtractiveSynthesizer answers with the extracted text itself, labelled
// with its provenance. It is deterministic: the same fragments always give
// the same answer and confidence.
type ExtractiveSynthesizer struct{}

// Synthesize joins the fragments. Confidence grows with the number of
// distinct sections extracted, n/(n+1), and is capped at 0.9.
func (ExtractiveSynthesizer) Synthesize(_ context.Context, _ string, fragments []pageindex.Fragment) (*pageindex.Synthesis, error) {
	if len(fragments) == 0 {
		return &pageindex.Synthesis{Answer: pageindex.NoAnswer}, nil
	}

	nodes := make(map[string]bool)
	for _, f := range fragments {
		nodes[f.NodeID] = true
	}
	n := float64(len(nodes))
	confidence := n / (n + 1)
	if confidence > 0.9 {
		confidence = 0.9
	}

	return &pageindex.Synthesis{
		Answer:     pageindex.FormatFragments(fragments),
		Confidence: confidence,
	}, nil
}
