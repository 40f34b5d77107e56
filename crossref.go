package pageindex

import (
	"regexp"
	"strings"
)

var crossRefRe = regexp.MustCompile(`(?i)\b(section|note|appendix|item|part|exhibit)\s+([a-z0-9]+(?:\.[a-z0-9]+)*)`)

// DetectCrossReferences finds mentions such as "see Section 3.2",
// "Note 7" or "Appendix A" in content and returns the ids they name, in
// order of first mention. A mention is kept only if exists reports one of
// its candidate ids ("3.2", "Section3.2", "Section 3.2", "section-3-2",
// "section-32") as present. The last form is the heading anchor of
// "Section 3.2".
func DetectCrossReferences(content string, exists func(id string) bool) []string {
	matches := crossRefRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	var refs []string
	seen := make(map[string]bool)
	for _, m := range matches {
		for _, id := range crossRefCandidates(m[1], m[2]) {
			if !exists(id) {
				continue
			}
			if !seen[id] {
				seen[id] = true
				refs = append(refs, id)
			}
			break
		}
	}
	return refs
}

func crossRefCandidates(keyword, label string) []string {
	kw := strings.ToUpper(keyword[:1]) + strings.ToLower(keyword[1:])
	return []string{
		label,
		kw + label,
		kw + " " + label,
		GenerateAnchor(keyword + " " + strings.ReplaceAll(label, ".", " ")),
		GenerateAnchor(keyword + " " + label),
	}
}

// MergeReferences appends the ids in extra that are not already in refs
// and are not self.
func MergeReferences(self string, refs []string, extra ...string) []string {
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs)+len(extra))
	for _, id := range append(append([]string{}, refs...), extra...) {
		if id == "" || id == self || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// LinkCrossReferences adds the references detected in each node's content
// to its CrossReferences, after any explicit ones. Only ids present under
// root are detected.
func LinkCrossReferences(root *Node) {
	if root == nil {
		return
	}
	ids := make(map[string]bool)
	walkNodes(root, func(n *Node) { ids[n.ID] = true })
	exists := func(id string) bool { return ids[id] }

	walkNodes(root, func(n *Node) {
		detected := DetectCrossReferences(n.Content, exists)
		if len(detected) == 0 {
			return
		}
		n.CrossReferences = MergeReferences(n.ID, n.CrossReferences, detected...)
	})
}

func walkNodes(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		if c != nil {
			walkNodes(c, fn)
		}
	}
}
