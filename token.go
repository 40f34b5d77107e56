package pageindex

import (
	"context"
	"strings"
)

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// IndexContent joins the content of every node in pre-order. It is the
// most text a synthesizer could be handed for the document.
func IndexContent(idx *Index) string {
	var parts []string
	idx.Walk(func(n *Node) bool {
		if n.HasContent() {
			parts = append(parts, strings.TrimSpace(n.Content))
		}
		return true
	})
	return strings.Join(parts, "\n\n")
}

// CountIndexTokens counts the tokens of IndexContent(idx).
func CountIndexTokens(ctx context.Context, tc TokenCounter, idx *Index) (int, error) {
	return tc.CountTokens(ctx, IndexContent(idx))
}
