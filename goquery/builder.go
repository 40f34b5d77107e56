// Package goquery builds document indexes from HTML using goquery. Heading
// elements become the outline; the elements between headings become
// section content, converted to Markdown.
package goquery

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageindex"
)

// DocumentType is the document_type metadata of HTML documents.
const DocumentType = "HTML Document"

const headingSelector = "h1, h2, h3, h4, h5, h6"

var _ pageindex.IndexBuilder = (*Builder)(nil)

// Builder builds an index from HTML.
type Builder struct {
	converter pageindex.Converter

	// Title names the root when the page has no <title> and no single top
	// heading. Defaults to "Document".
	Title string
}

// NewBuilder creates a new Builder that converts section bodies with
// converter.
func NewBuilder(converter pageindex.Converter) *Builder {
	return &Builder{converter: converter}
}

type stackEntry struct {
	node  *pageindex.Node
	level int
}

// Build parses data and returns its outline. The page's main or article
// element is used when present, otherwise the body. A heading's id
// attribute becomes its node id when unique; other headings get anchors
// generated from their text.
func (b *Builder) Build(data []byte) (*pageindex.Index, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pageindex.Errorf(pageindex.EINVALID, "empty document")
	}
	if b.converter == nil {
		return nil, pageindex.Errorf(pageindex.EINVALID, "converter required")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, pageindex.Errorf(pageindex.EINVALID, "failed to parse HTML: %v", err)
	}

	body := doc.Find("main, article").First()
	if body.Length() == 0 {
		body = doc.Find("body")
	}
	headings := body.Find(headingSelector)

	anchors := pageindex.NewAnchors()
	anchors.Reserve("root")
	headings.Each(func(_ int, h *goquery.Selection) {
		if id := strings.TrimSpace(h.AttrOr("id", "")); id != "" {
			anchors.Reserve(id)
		}
	})
	used := map[string]bool{"root": true}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = b.Title
	}
	if title == "" {
		title = "Document"
	}

	root := &pageindex.Node{ID: "root", Title: title}
	if root.Content, err = b.convert(preamble(body)); err != nil {
		return nil, err
	}
	stack := []stackEntry{{node: root, level: 0}}

	var buildErr error
	headings.EachWithBreak(func(_ int, h *goquery.Selection) bool {
		level := headingLevel(h)
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		heading := strings.Join(strings.Fields(h.Text()), " ")
		id := strings.TrimSpace(h.AttrOr("id", ""))
		if id == "" || used[id] {
			id = anchors.Next(heading)
		}
		used[id] = true

		node := &pageindex.Node{ID: id, Title: heading, Level: len(stack)}
		if node.Content, buildErr = b.convert(sectionBody(h)); buildErr != nil {
			return false
		}

		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: level})
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

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

// convert turns section HTML into Markdown. Empty sections stay empty.
func (b *Builder) convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := b.converter.Convert(html)
	if err != nil {
		return "", pageindex.Errorf(pageindex.EINVALID, "failed to convert section: %v", err)
	}
	return md, nil
}

// sectionBody returns the HTML of the heading's following siblings up to
// the next heading. Siblings that contain a heading belong to a nested
// section and are skipped.
func sectionBody(h *goquery.Selection) string {
	var sb strings.Builder
	h.NextUntil(headingSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Has(headingSelector).Length() > 0 {
			return
		}
		if html, err := goquery.OuterHtml(s); err == nil {
			sb.WriteString(html)
		}
	})
	return sb.String()
}

// preamble returns the HTML before the first heading.
func preamble(body *goquery.Selection) string {
	var sb strings.Builder
	body.Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is(headingSelector) || s.Has(headingSelector).Length() > 0 {
			return false
		}
		if html, err := goquery.OuterHtml(s); err == nil {
			sb.WriteString(html)
		}
		return true
	})
	return sb.String()
}

func headingLevel(h *goquery.Selection) int {
	name := goquery.NodeName(h)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 6
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
	return "html-" + hex.EncodeToString(d.Sum(nil))
}
