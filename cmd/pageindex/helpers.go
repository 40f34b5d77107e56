package main

import (
	"fmt"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/navigate"
)

// findDocument looks a document up by name and reports failures on stderr.
func findDocument(deps *Dependencies, name string) (*pageindex.Document, error) {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, pageindex.DocumentFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return nil, err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'pageindex list' to see available documents.\n", name)
		return nil, pageindex.Errorf(pageindex.ENOTFOUND, "document %q not found", name)
	}
	return docs[0], nil
}

func newEngine(deps *Dependencies, oracle pageindex.Oracle, doc *pageindex.Document, config navigate.Config) *navigate.Engine {
	e := &navigate.Engine{
		Oracle: oracle,
		Config: config,
		Logger: deps.Logger,
	}
	if deps.Synthesizer != nil {
		e.Synthesizer = deps.Synthesizer(doc.Metadata[pageindex.MetadataDocumentType])
	}
	return e
}

// FormatBytes formats byte count in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
