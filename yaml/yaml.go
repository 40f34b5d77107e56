// Package yaml builds document indexes from structured YAML or JSON
// sources. JSON is valid YAML, so the same builders read both. Mapping key
// order in the source becomes child order in the tree.
package yaml

import (
	"strings"

	"github.com/fwojciec/pageindex"
	"gopkg.in/yaml.v3"
)

// section is a titled node with nested subsections keyed by id.
type section struct {
	Title           string    `yaml:"title"`
	Summary         string    `yaml:"summary"`
	Content         string    `yaml:"content"`
	CrossReferences []string  `yaml:"cross_references"`
	Subsections     yaml.Node `yaml:"subsections"`
}

// decode parses data, which must hold a single mapping, into v.
func decode(data []byte, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return pageindex.Errorf(pageindex.EINVALID, "empty document")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return pageindex.Errorf(pageindex.EINVALID, "parse document: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return pageindex.Errorf(pageindex.EINVALID, "document must be a mapping")
	}
	if err := doc.Content[0].Decode(v); err != nil {
		return pageindex.Errorf(pageindex.EINVALID, "decode document: %v", err)
	}
	return nil
}

// each calls fn for every key/value pair of a mapping node in source
// order. A nil or null node has no pairs.
func each(m *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	if m == nil || m.Kind == 0 || m.Tag == "!!null" {
		return nil
	}
	if m.Kind != yaml.MappingNode {
		return pageindex.Errorf(pageindex.EINVALID, "%s must be a mapping (line %d)", what, m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if err := fn(m.Content[i].Value, m.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// sections converts a mapping of id to section into nodes at level.
func sections(m *yaml.Node, level int) ([]*pageindex.Node, error) {
	var nodes []*pageindex.Node
	err := each(m, "sections", func(id string, value *yaml.Node) error {
		var s section
		if err := value.Decode(&s); err != nil {
			return pageindex.Errorf(pageindex.EINVALID, "section %q: %v", id, err)
		}
		n := &pageindex.Node{
			ID:              id,
			Title:           orDefault(s.Title, id),
			Level:           level,
			Summary:         s.Summary,
			Content:         s.Content,
			CrossReferences: s.CrossReferences,
		}
		children, err := sections(&s.Subsections, level+1)
		if err != nil {
			return err
		}
		n.Children = children
		nodes = append(nodes, n)
		return nil
	})
	return nodes, err
}

// group wraps leaf entries such as footnotes or appendices under one
// synthetic level-1 node. It returns nil when m has no entries.
func group(id, title string, m *yaml.Node) (*pageindex.Node, error) {
	if m == nil || m.Kind == 0 || m.Tag == "!!null" {
		return nil, nil
	}
	children, err := sections(m, 2)
	if err != nil {
		return nil, err
	}
	return &pageindex.Node{ID: id, Title: title, Level: 1, Children: children}, nil
}

// build links detected cross-references and validates the tree.
func build(documentID string, metadata map[string]string, root *pageindex.Node) (*pageindex.Index, error) {
	pageindex.LinkCrossReferences(root)
	return pageindex.NewIndex(documentID, metadata, root)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func setIf(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func required(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return pageindex.Errorf(pageindex.EINVALID, "%s required", field)
	}
	return nil
}
