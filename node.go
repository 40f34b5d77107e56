package pageindex

import "strings"

// Node is one entry in a document's outline: a part, section, subsection
// or leaf. Nodes are built once when a document is indexed and must not be
// modified afterwards.
type Node struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Summary string `json:"summary,omitempty"`
	Content string `json:"content,omitempty"`

	// Children in document order.
	Children []*Node `json:"children,omitempty"`

	// CrossReferences holds ids of other nodes this one points to
	// ("see Section 3.2"). They are links, not ownership, and may dangle.
	CrossReferences []string `json:"cross_references,omitempty"`
}

// HasContent reports whether the node carries text of its own.
func (n *Node) HasContent() bool {
	return strings.TrimSpace(n.Content) != ""
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the direct child with the given id, or nil.
func (n *Node) Child(id string) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ChildTitles returns the titles of the node's children in document order.
func (n *Node) ChildTitles() []string {
	titles := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		titles = append(titles, c.Title)
	}
	return titles
}

// Preview returns the content truncated to maxRunes runes, with "..."
// appended when truncated. A non-positive maxRunes returns "".
func (n *Node) Preview(maxRunes int) string {
	return truncate(strings.TrimSpace(n.Content), maxRunes)
}

// TableOfContents renders the subtree as an indented "- id: title" outline
// down to maxDepth levels below this node.
func (n *Node) TableOfContents(maxDepth int) string {
	var lines []string
	n.buildTOC(&lines, 0, maxDepth)
	return strings.Join(lines, "\n")
}

func (n *Node) buildTOC(lines *[]string, depth, maxDepth int) {
	*lines = append(*lines, strings.Repeat("  ", depth)+"- "+n.ID+": "+n.Title)
	if depth >= maxDepth {
		return
	}
	for _, c := range n.Children {
		c.buildTOC(lines, depth+1, maxDepth)
	}
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}
