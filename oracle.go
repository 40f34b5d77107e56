package pageindex

import (
	"context"
	"strings"
)

// Action is a navigation step chosen by an Oracle.
type Action string

// Navigation actions. ActionStart and ActionRetry never come from an
// Oracle: they mark the initial position in a navigation path and rejected
// oracle attempts in a trace.
const (
	ActionDescend   Action = "descend"
	ActionExtract   Action = "extract"
	ActionBacktrack Action = "backtrack"
	ActionComplete  Action = "complete"

	ActionStart Action = "start"
	ActionRetry Action = "retry"
)

// Decision is the Oracle's judgment for the current node. Exactly one
// action per decision; Target names the child for descend and the
// destination for backtrack. Rationale is required for auditability.
type Decision struct {
	Action    Action `json:"action"`
	Target    string `json:"target,omitempty"`
	Rationale string `json:"rationale"`
}

// Descend returns a decision to move into the child with the given id.
func Descend(childID, rationale string) Decision {
	return Decision{Action: ActionDescend, Target: childID, Rationale: rationale}
}

// Extract returns a decision to record the current node's content.
func Extract(rationale string) Decision {
	return Decision{Action: ActionExtract, Rationale: rationale}
}

// Backtrack returns a decision to move to an ancestor or referenced node.
func Backtrack(targetID, rationale string) Decision {
	return Decision{Action: ActionBacktrack, Target: targetID, Rationale: rationale}
}

// Complete returns a decision to stop navigating.
func Complete(rationale string) Decision {
	return Decision{Action: ActionComplete, Rationale: rationale}
}

// Validate returns EORACLE if the decision is not one of the four
// navigation actions, lacks a rationale, or lacks a required target.
func (d Decision) Validate() error {
	switch d.Action {
	case ActionDescend, ActionBacktrack:
		if strings.TrimSpace(d.Target) == "" {
			return Errorf(EORACLE, "%s decision requires a target", d.Action)
		}
	case ActionExtract, ActionComplete:
	default:
		return Errorf(EORACLE, "unknown action %q", d.Action)
	}
	if strings.TrimSpace(d.Rationale) == "" {
		return Errorf(EORACLE, "%s decision requires a rationale", d.Action)
	}
	return nil
}

// ChildDescriptor describes a child of the node being judged.
type ChildDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	HasChildren bool   `json:"has_children"`
}

// CrossReference is a resolved cross-reference target.
type CrossReference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NodeDescriptor is what an Oracle sees of a node. It never carries the
// full content; Preview is bounded by the engine configuration.
type NodeDescriptor struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Level           int               `json:"level"`
	Summary         string            `json:"summary,omitempty"`
	HasContent      bool              `json:"has_content"`
	Preview         string            `json:"preview,omitempty"`
	Children        []ChildDescriptor `json:"children"`
	CrossReferences []CrossReference  `json:"cross_references,omitempty"`
}

// NavigationContext is the session state shared with the Oracle so it can
// avoid repeating itself. All slices are copies.
type NavigationContext struct {
	DocumentID     string            `json:"document_id"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Path           []PathEntry       `json:"path"`
	Trace          []TraceEntry      `json:"trace"`
	Extracted      []Fragment        `json:"extracted"`
	Step           int               `json:"step"`
	StepsRemaining int               `json:"steps_remaining"`
}

// Oracle judges a node's relevance to a query and decides the next
// navigation action. Implementations may be model-backed, rule-based, or a
// human at a terminal. Any error is treated as a retryable failure.
type Oracle interface {
	Judge(ctx context.Context, query string, node NodeDescriptor, nav NavigationContext) (Decision, error)
}
