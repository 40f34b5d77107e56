// Package goldmark builds document indexes from Markdown using the
// goldmark parser. Headings become the outline; the blocks under a
// heading become its content.
package goldmark

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageindex"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DocumentType is the document_type metadata of Markdown documents.
const DocumentType = "Markdown Document"

// SummaryLength is the rune limit of generated summaries.
const SummaryLength = 200

var _ pageindex.IndexBuilder = (*Builder)(nil)

// Builder builds an index from Markdown.
type Builder struct {
	// Title names the root when the document has no single top heading.
	// Defaults to "Document".
	Title string
}

// NewBuilder creates a new Builder.
func NewBuilder(title string) *Builder {
	return &Builder{Title: title}
}

type stackEntry struct {
	node  *pageindex.Node
	level int
}

// Build parses data and returns its outline. Heading levels may skip;
// node levels follow tree depth. A document whose only top-level heading
// holds everything is rooted at that heading. The document id is derived
// from a hash of data, so the same source always gets the same id.
func (b *Builder) Build(data []byte) (*pageindex.Index, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pageindex.Errorf(pageindex.EINVALID, "empty document")
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	anchors := pageindex.NewAnchors()
	anchors.Reserve("root")

	title := b.Title
	if title == "" {
		title = "Document"
	}
	root := &pageindex.Node{ID: "root", Title: title}
	stack := []stackEntry{{node: root, level: 0}}

	var blocks []string
	flush := func() {
		top := stack[len(stack)-1].node
		top.Content = strings.Join(blocks, "\n\n")
		if len(blocks) > 0 {
			top.Summary = summarize(blocks[0])
		}
		blocks = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			heading := strings.TrimSpace(inlineText(node, data))
			child := &pageindex.Node{
				ID:    anchors.Next(heading),
				Title: heading,
				Level: len(stack),
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, child)
			stack = append(stack, stackEntry{node: child, level: node.Level})
		default:
			if t := extractText(n, data); t != "" {
				blocks = append(blocks, t)
			}
		}
	}
	flush()

	if len(root.Children) == 1 && !root.HasContent() {
		top := root.Children[0]
		top.ID = "root"
		root = top
		relevel(root, 0)
	}

	pageindex.LinkCrossReferences(root)

	metadata := map[string]string{
		pageindex.MetadataDocumentType: DocumentType,
		"title":                        root.Title,
	}
	return pageindex.NewIndex(documentID(data), metadata, root)
}

func relevel(n *pageindex.Node, level int) {
	n.Level = level
	for _, c := range n.Children {
		relevel(c, level+1)
	}
}

func documentID(data []byte) string {
	d := xxhash.New()
	_, _ = d.Write(data)
	return "md-" + hex.EncodeToString(d.Sum(nil))
}

func summarize(block string) string {
	r := []rune(strings.Join(strings.Fields(block), " "))
	if len(r) <= SummaryLength {
		return string(r)
	}
	return string(r[:SummaryLength]) + "..."
}

// extractText returns the plain text of a block. Code blocks keep their
// lines verbatim; list items are prefixed with "- ".
func extractText(n ast.Node, src []byte) string {
	switch n.Kind() {
	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimRight(buf.String(), "\n")
	}

	if n.Type() == ast.TypeBlock && n.HasChildren() && n.FirstChild().Type() == ast.TypeBlock {
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := extractText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		t := strings.Join(parts, "\n")
		if n.Kind() == ast.KindListItem {
			t = "- " + t
		}
		return t
	}

	return strings.TrimSpace(inlineText(n, src))
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
