package navigate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/mock"
	"github.com/stretchr/testify/require"
)

// manual builds:
//
//	root
//	├── s1 Safety
//	│   ├── s1.1 Protective Equipment
//	│   └── s1.2 Lockout (refs s3.2.3)
//	└── s3 Maintenance
//	    ├── s3.1 Daily Checks
//	    └── s3.2 Scheduled Service
//	        └── s3.2.3 Filter Replacement
func manual(t *testing.T) *pageindex.Index {
	t.Helper()

	root := &pageindex.Node{ID: "root", Title: "Pump Manual", Content: "Model P-200 operating manual.", Children: []*pageindex.Node{
		{ID: "s1", Title: "Safety", Level: 1, Content: "Read before operating.", Children: []*pageindex.Node{
			{ID: "s1.1", Title: "Protective Equipment", Level: 2, Content: "Wear gloves and goggles."},
			{ID: "s1.2", Title: "Lockout", Level: 2, Content: "Isolate power before servicing, see section 3.2.3.", CrossReferences: []string{"s3.2.3"}},
		}},
		{ID: "s3", Title: "Maintenance", Level: 1, Content: "Maintenance overview.", Children: []*pageindex.Node{
			{ID: "s3.1", Title: "Daily Checks", Level: 2, Content: "Check the oil level."},
			{ID: "s3.2", Title: "Scheduled Service", Level: 2, Content: "Service every 500 hours.", Children: []*pageindex.Node{
				{ID: "s3.2.3", Title: "Filter Replacement", Level: 3, Content: "Replace the filter every 500 hours."},
			}},
		}},
	}}
	idx, err := pageindex.NewIndex("pump-manual", map[string]string{pageindex.MetadataDocumentType: "sop"}, root)
	require.NoError(t, err)
	return idx
}

// straight builds root → Section3 → 3.2 → 3.2.3.
func straight(t *testing.T) *pageindex.Index {
	t.Helper()

	root := &pageindex.Node{ID: "root", Title: "Root", Content: "root text", Children: []*pageindex.Node{
		{ID: "Section3", Title: "Section 3", Level: 1, Content: "section text", Children: []*pageindex.Node{
			{ID: "3.2", Title: "Subsection 3.2", Level: 2, Content: "subsection text", Children: []*pageindex.Node{
				{ID: "3.2.3", Title: "Item 3.2.3", Level: 3, Content: "the answer"},
			}},
		}},
	}}
	idx, err := pageindex.NewIndex("straight", nil, root)
	require.NoError(t, err)
	return idx
}

// script returns an oracle that replays decisions in order and completes
// once they run out. Calls records every node the oracle was shown.
type script struct {
	mu        sync.Mutex
	decisions []pageindex.Decision
	calls     []pageindex.NodeDescriptor
	contexts  []pageindex.NavigationContext
}

func newScript(decisions ...pageindex.Decision) *script {
	return &script{decisions: decisions}
}

func (s *script) oracle() *mock.Oracle {
	return &mock.Oracle{
		JudgeFn: func(_ context.Context, _ string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.calls = append(s.calls, node)
			s.contexts = append(s.contexts, nav)
			if len(s.decisions) == 0 {
				return pageindex.Complete("script exhausted"), nil
			}
			d := s.decisions[0]
			s.decisions = s.decisions[1:]
			return d, nil
		},
	}
}

func fixedSynthesizer(answer string, confidence float64) *mock.Synthesizer {
	return &mock.Synthesizer{
		SynthesizeFn: func(_ context.Context, _ string, _ []pageindex.Fragment) (*pageindex.Synthesis, error) {
			return &pageindex.Synthesis{Answer: answer, Confidence: confidence}, nil
		},
	}
}

func pathIDs(path []pageindex.PathEntry) []string {
	ids := make([]string, len(path))
	for i, p := range path {
		ids[i] = p.ID
	}
	return ids
}

func traceActions(trace []pageindex.TraceEntry) []pageindex.Action {
	actions := make([]pageindex.Action, len(trace))
	for i, e := range trace {
		actions[i] = e.Action
	}
	return actions
}
