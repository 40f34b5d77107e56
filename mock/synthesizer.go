package mock

import (
	"context"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of pageindex.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, query string, fragments []pageindex.Fragment) (*pageindex.Synthesis, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, query string, fragments []pageindex.Fragment) (*pageindex.Synthesis, error) {
	return s.SynthesizeFn(ctx, query, fragments)
}
