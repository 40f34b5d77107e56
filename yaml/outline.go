package yaml

import (
	"github.com/fwojciec/pageindex"
)

var _ pageindex.IndexBuilder = (*OutlineBuilder)(nil)

// OutlineBuilder builds an index from an explicit tree:
//
//	document_id: pump-manual
//	metadata: {document_type: Technical Manual}
//	root:
//	  id: root
//	  title: P-200 Manual
//	  children:
//	    - id: s1
//	      title: Safety
//
// Levels are assigned from depth.
type OutlineBuilder struct{}

type outline struct {
	DocumentID string            `yaml:"document_id"`
	Metadata   map[string]string `yaml:"metadata"`
	Root       *outlineNode      `yaml:"root"`
}

type outlineNode struct {
	ID              string         `yaml:"id"`
	Title           string         `yaml:"title"`
	Summary         string         `yaml:"summary"`
	Content         string         `yaml:"content"`
	CrossReferences []string       `yaml:"cross_references"`
	Children        []*outlineNode `yaml:"children"`
}

// Build parses data and returns the outline's index.
func (OutlineBuilder) Build(data []byte) (*pageindex.Index, error) {
	var o outline
	if err := decode(data, &o); err != nil {
		return nil, err
	}
	if err := required(o.DocumentID, "document_id"); err != nil {
		return nil, err
	}
	if o.Root == nil {
		return nil, pageindex.Errorf(pageindex.ESTRUCTURE, "document %q has no root node", o.DocumentID)
	}

	metadata := o.Metadata
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return build(o.DocumentID, metadata, o.Root.node(0))
}

func (n *outlineNode) node(level int) *pageindex.Node {
	out := &pageindex.Node{
		ID:              n.ID,
		Title:           orDefault(n.Title, n.ID),
		Level:           level,
		Summary:         n.Summary,
		Content:         n.Content,
		CrossReferences: n.CrossReferences,
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		out.Children = append(out.Children, c.node(level+1))
	}
	return out
}
