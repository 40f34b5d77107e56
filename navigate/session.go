package navigate

import (
	"github.com/fwojciec/pageindex"
)

// Jump records a backtrack that left the current ancestor path, either
// along a cross-reference or to a previously visited node.
type Jump struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Session is the state of one navigation over an Index. It is a pure
// state machine: Apply changes state only when the decision is valid, so
// the same decisions always produce the same trace, stack and fragments.
// A Session must not be shared between goroutines.
type Session struct {
	idx    *pageindex.Index
	config Config

	current   *pageindex.Node
	stack     []*pageindex.Node
	fragments []pageindex.Fragment
	trace     []pageindex.TraceEntry
	path      []pageindex.PathEntry
	jumps     []Jump
	steps     int

	visited    map[string]bool
	refTargets map[string]bool

	done      bool
	truncated bool
	degraded  bool
}

// NewSession starts a session positioned at the index root.
func NewSession(idx *pageindex.Index, config Config) *Session {
	root := idx.Root()
	s := &Session{
		idx:        idx,
		config:     config.withDefaults(),
		current:    root,
		stack:      []*pageindex.Node{root},
		path:       []pageindex.PathEntry{{ID: root.ID, Title: root.Title, Action: pageindex.ActionStart}},
		visited:    make(map[string]bool),
		refTargets: make(map[string]bool),
	}
	s.visit(root)
	return s
}

func (s *Session) visit(n *pageindex.Node) {
	s.visited[n.ID] = true
	for _, ref := range n.CrossReferences {
		if s.idx.Has(ref) {
			s.refTargets[ref] = true
		}
	}
}

// Current returns the node the session is positioned at.
func (s *Session) Current() *pageindex.Node { return s.current }

// Steps returns the number of decisions applied so far.
func (s *Session) Steps() int { return s.steps }

// Done reports whether the session has completed.
func (s *Session) Done() bool { return s.done }

// Truncated reports whether the step limit ended the session.
func (s *Session) Truncated() bool { return s.truncated }

// Degraded reports whether a failure forced the session to end.
func (s *Session) Degraded() bool { return s.degraded }

// Stack returns the ids of the tree edges traversed to reach the current
// node. It starts at the root, or at the target of the latest jump.
func (s *Session) Stack() []string {
	ids := make([]string, len(s.stack))
	for i, n := range s.stack {
		ids[i] = n.ID
	}
	return ids
}

// Fragments returns the extracted fragments in extraction order.
func (s *Session) Fragments() []pageindex.Fragment {
	return append([]pageindex.Fragment(nil), s.fragments...)
}

// Trace returns a copy of the trace.
func (s *Session) Trace() []pageindex.TraceEntry {
	return append([]pageindex.TraceEntry(nil), s.trace...)
}

// Path returns the positions visited, including backtracks, in order.
func (s *Session) Path() []pageindex.PathEntry {
	return append([]pageindex.PathEntry(nil), s.path...)
}

// Jumps returns the non-ancestor backtracks taken.
func (s *Session) Jumps() []Jump {
	return append([]Jump(nil), s.jumps...)
}

// Descriptor describes the current node for the oracle. Dangling
// cross-references are left out.
func (s *Session) Descriptor() pageindex.NodeDescriptor {
	n := s.current
	d := pageindex.NodeDescriptor{
		ID:         n.ID,
		Title:      n.Title,
		Level:      n.Level,
		Summary:    n.Summary,
		HasContent: n.HasContent(),
		Preview:    n.Preview(s.config.PreviewLength),
		Children:   make([]pageindex.ChildDescriptor, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, pageindex.ChildDescriptor{
			ID:          c.ID,
			Title:       c.Title,
			Summary:     c.Summary,
			HasChildren: !c.IsLeaf(),
		})
	}
	for _, ref := range n.CrossReferences {
		target, err := s.idx.ResolveCrossReference(ref)
		if err != nil {
			continue
		}
		d.CrossReferences = append(d.CrossReferences, pageindex.CrossReference{ID: target.ID, Title: target.Title})
	}
	return d
}

// Context returns the navigation context passed to the oracle.
func (s *Session) Context() pageindex.NavigationContext {
	meta := make(map[string]string, len(s.idx.Metadata))
	for k, v := range s.idx.Metadata {
		meta[k] = v
	}
	return pageindex.NavigationContext{
		DocumentID:     s.idx.DocumentID,
		Metadata:       meta,
		Path:           s.Path(),
		Trace:          s.Trace(),
		Extracted:      s.Fragments(),
		Step:           s.steps + 1,
		StepsRemaining: s.config.StepLimit - s.steps,
	}
}

// Apply validates and applies one oracle decision. It returns EORACLE for
// a malformed decision and ETRANSITION for a target the tree or stack does
// not allow; in both cases the session is unchanged.
func (s *Session) Apply(d pageindex.Decision) error {
	if s.done {
		return pageindex.Errorf(pageindex.EINVALID, "session is complete")
	}
	if s.steps >= s.config.StepLimit {
		return pageindex.Errorf(pageindex.EINVALID, "step limit of %d reached", s.config.StepLimit)
	}
	if err := d.Validate(); err != nil {
		return err
	}

	switch d.Action {
	case pageindex.ActionDescend:
		return s.descend(d)
	case pageindex.ActionExtract:
		s.extract(d)
	case pageindex.ActionBacktrack:
		return s.backtrack(d)
	case pageindex.ActionComplete:
		s.steps++
		s.record(pageindex.TraceEntry{Step: s.steps, Action: pageindex.ActionComplete, NodeID: s.current.ID, Rationale: d.Rationale})
		s.done = true
	}
	return nil
}

func (s *Session) descend(d pageindex.Decision) error {
	child := s.current.Child(d.Target)
	if child == nil {
		return pageindex.Errorf(pageindex.ETRANSITION, "%q is not a child of %q", d.Target, s.current.ID)
	}

	s.steps++
	s.stack = append(s.stack, child)
	s.moveTo(child, pageindex.ActionDescend)
	s.record(pageindex.TraceEntry{Step: s.steps, Action: pageindex.ActionDescend, NodeID: child.ID, Rationale: d.Rationale})
	return nil
}

func (s *Session) extract(d pageindex.Decision) {
	s.steps++
	n := s.current
	entry := pageindex.TraceEntry{Step: s.steps, Action: pageindex.ActionExtract, NodeID: n.ID, Rationale: d.Rationale}
	if n.HasContent() {
		s.fragments = append(s.fragments, pageindex.Fragment{NodeID: n.ID, Title: n.Title, Text: n.Content})
	} else {
		entry.NoContent = true
	}
	s.record(entry)
}

func (s *Session) backtrack(d pageindex.Decision) error {
	if d.Target == s.current.ID {
		return pageindex.Errorf(pageindex.ETRANSITION, "already at %q", d.Target)
	}

	// Traversed ancestors come first: they never count as jumps.
	for i := len(s.stack) - 2; i >= 0; i-- {
		if s.stack[i].ID == d.Target {
			s.steps++
			s.stack = s.stack[:i+1]
			s.moveTo(s.stack[i], pageindex.ActionBacktrack)
			s.record(pageindex.TraceEntry{Step: s.steps, Action: pageindex.ActionBacktrack, NodeID: d.Target, Rationale: d.Rationale})
			return nil
		}
	}

	allowed := (s.config.AllowCrossReferenceJumps && s.refTargets[d.Target]) ||
		(s.config.AllowVisitedJumps && s.visited[d.Target])
	if !allowed {
		if !s.idx.Has(d.Target) {
			return pageindex.Errorf(pageindex.ETRANSITION, "backtrack target %q does not exist", d.Target)
		}
		return pageindex.Errorf(pageindex.ETRANSITION, "backtrack target %q is not an ancestor of %q or a permitted jump", d.Target, s.current.ID)
	}

	target, err := s.idx.Node(d.Target)
	if err != nil {
		return pageindex.Errorf(pageindex.ETRANSITION, "backtrack target %q: %s", d.Target, pageindex.ErrorMessage(err))
	}

	// A jump starts a new stack segment: the target's ancestors were never
	// traversed, so they are not backtrack targets.
	s.steps++
	s.jumps = append(s.jumps, Jump{From: s.current.ID, To: d.Target})
	s.stack = []*pageindex.Node{target}
	s.moveTo(target, pageindex.ActionBacktrack)
	s.record(pageindex.TraceEntry{Step: s.steps, Action: pageindex.ActionBacktrack, NodeID: d.Target, Rationale: d.Rationale, CrossReference: true})
	return nil
}

func (s *Session) moveTo(n *pageindex.Node, action pageindex.Action) {
	s.current = n
	s.path = append(s.path, pageindex.PathEntry{ID: n.ID, Title: n.Title, Action: action})
	s.visit(n)
}

func (s *Session) record(e pageindex.TraceEntry) {
	s.trace = append(s.trace, e)
}

// Fail records a rejected oracle attempt. It does not count as a step: the
// entry carries the number of the step it was trying to fill, which the
// next applied decision shares.
func (s *Session) Fail(err error) {
	s.record(pageindex.TraceEntry{Step: s.steps + 1, Action: pageindex.ActionRetry, NodeID: s.current.ID, Rationale: err.Error()})
}

// Halt ends the session with a synthetic complete entry. Halting a
// completed session does nothing.
func (s *Session) Halt(rationale string, truncated, degraded bool) {
	if s.done {
		return
	}
	s.record(pageindex.TraceEntry{Step: s.steps + 1, Action: pageindex.ActionComplete, NodeID: s.current.ID, Rationale: rationale})
	s.done = true
	s.truncated = s.truncated || truncated
	s.degraded = s.degraded || degraded
}

// Sources returns the extracted nodes, deduplicated, in first-extracted
// order.
func (s *Session) Sources() []pageindex.Source {
	sources := []pageindex.Source{}
	seen := make(map[string]bool)
	for _, f := range s.fragments {
		if seen[f.NodeID] {
			continue
		}
		seen[f.NodeID] = true
		sources = append(sources, pageindex.Source{ID: f.NodeID, Title: f.Title})
	}
	return sources
}

// UniqueFragments returns one fragment per node in first-extracted order.
func (s *Session) UniqueFragments() []pageindex.Fragment {
	var out []pageindex.Fragment
	seen := make(map[string]bool)
	for _, f := range s.fragments {
		if seen[f.NodeID] {
			continue
		}
		seen[f.NodeID] = true
		out = append(out, f)
	}
	return out
}
