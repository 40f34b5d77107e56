package pageindex

// MetadataDocumentType is the metadata key naming the document's type.
const MetadataDocumentType = "document_type"

// Index owns a document's outline and provides id lookup and traversal
// over it. An Index is read-only after NewIndex returns and may be shared
// by any number of concurrent navigation sessions. Replacing a document
// means building a new Index.
type Index struct {
	DocumentID string
	Metadata   map[string]string

	root    *Node
	nodes   map[string]*Node
	parents map[string]*Node
	depths  map[string]int
	order   []*Node
}

// NewIndex validates the tree under root and builds the lookup tables.
// Returns ESTRUCTURE if root is nil, a node or child is nil, an id is empty
// or repeated, or a node's Level does not equal its depth.
func NewIndex(documentID string, metadata map[string]string, root *Node) (*Index, error) {
	if root == nil {
		return nil, Errorf(ESTRUCTURE, "document %q has no root node", documentID)
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	idx := &Index{
		DocumentID: documentID,
		Metadata:   meta,
		root:       root,
		nodes:      make(map[string]*Node),
		parents:    make(map[string]*Node),
		depths:     make(map[string]int),
	}

	type frame struct {
		node   *Node
		parent *Node
		depth  int
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		if n.ID == "" {
			return nil, Errorf(ESTRUCTURE, "node %q at depth %d has an empty id", n.Title, f.depth)
		}
		if _, exists := idx.nodes[n.ID]; exists {
			return nil, Errorf(ESTRUCTURE, "duplicate node id %q", n.ID)
		}
		if n.Level != f.depth {
			return nil, Errorf(ESTRUCTURE, "node %q has level %d but depth %d", n.ID, n.Level, f.depth)
		}

		idx.nodes[n.ID] = n
		idx.depths[n.ID] = f.depth
		if f.parent != nil {
			idx.parents[n.ID] = f.parent
		}
		idx.order = append(idx.order, n)

		// Push in reverse so children pop in document order.
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			if c == nil {
				return nil, Errorf(ESTRUCTURE, "node %q has a nil child at position %d", n.ID, i)
			}
			stack = append(stack, frame{node: c, parent: n, depth: f.depth + 1})
		}
	}

	return idx, nil
}

// Root returns the root node.
func (idx *Index) Root() *Node {
	return idx.root
}

// Len returns the number of nodes in the tree.
func (idx *Index) Len() int {
	return len(idx.nodes)
}

// DocumentType returns the document_type metadata value, if any.
func (idx *Index) DocumentType() string {
	return idx.Metadata[MetadataDocumentType]
}

// Node returns the node with the given id.
// Returns ENOTFOUND if no such node exists.
func (idx *Index) Node(id string) (*Node, error) {
	n, ok := idx.nodes[id]
	if !ok {
		return nil, Errorf(ENOTFOUND, "node %q not found", id)
	}
	return n, nil
}

// Has reports whether a node with the given id exists.
func (idx *Index) Has(id string) bool {
	_, ok := idx.nodes[id]
	return ok
}

// Children returns the children of a node in document order. The slice is
// a copy, so changing it does not change the tree.
// Returns ENOTFOUND if the node does not exist.
func (idx *Index) Children(id string) ([]*Node, error) {
	n, err := idx.Node(id)
	if err != nil {
		return nil, err
	}
	return append([]*Node{}, n.Children...), nil
}

// Parent returns the parent of a node, or nil for the root.
// Returns ENOTFOUND if the node does not exist.
func (idx *Index) Parent(id string) (*Node, error) {
	if _, err := idx.Node(id); err != nil {
		return nil, err
	}
	return idx.parents[id], nil
}

// Depth returns the distance of a node from the root.
// Returns ENOTFOUND if the node does not exist.
func (idx *Index) Depth(id string) (int, error) {
	d, ok := idx.depths[id]
	if !ok {
		return 0, Errorf(ENOTFOUND, "node %q not found", id)
	}
	return d, nil
}

// ResolveCrossReference returns the target of a cross-reference.
// Returns EDANGLING if the target does not exist. Dangling references are
// tolerated at construction and only reported here.
func (idx *Index) ResolveCrossReference(id string) (*Node, error) {
	n, ok := idx.nodes[id]
	if !ok {
		return nil, Errorf(EDANGLING, "cross-reference %q does not resolve", id)
	}
	return n, nil
}

// PathToRoot returns the nodes from the root down to id, inclusive.
// Returns ENOTFOUND if the node does not exist.
func (idx *Index) PathToRoot(id string) ([]*Node, error) {
	n, err := idx.Node(id)
	if err != nil {
		return nil, err
	}

	path := make([]*Node, idx.depths[id]+1)
	for i := len(path) - 1; i >= 0; i-- {
		path[i] = n
		n = idx.parents[n.ID]
	}
	return path, nil
}

// Walk calls fn for every node in pre-order (document order). Walking stops
// early when fn returns false.
func (idx *Index) Walk(fn func(n *Node) bool) {
	for _, n := range idx.order {
		if !fn(n) {
			return
		}
	}
}
