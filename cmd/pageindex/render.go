package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pageindex"
)

// RenderResult prints a query result for a terminal: the answer, its
// confidence, the sources and the navigation path, plus the trace when
// trace is set.
func RenderResult(w io.Writer, res *pageindex.QueryResult, trace bool) {
	fmt.Fprintf(w, "%s\n\n", res.Answer)
	fmt.Fprintf(w, "Confidence: %.2f (%d steps)%s\n", res.Confidence, res.Steps, flags(res))

	if len(res.Sources) > 0 {
		fmt.Fprintln(w, "Sources:")
		for _, s := range res.Sources {
			fmt.Fprintf(w, "  - %s: %s\n", s.ID, s.Title)
		}
	}

	path := make([]string, 0, len(res.NavigationPath))
	for _, p := range res.NavigationPath {
		if p.Action == pageindex.ActionBacktrack {
			path = append(path, "<"+p.ID)
			continue
		}
		path = append(path, p.ID)
	}
	fmt.Fprintf(w, "Path: %s\n", strings.Join(path, " > "))

	if !trace {
		return
	}
	fmt.Fprintln(w, "Trace:")
	for _, e := range res.Trace {
		line := fmt.Sprintf("  %2d. %-9s %s", e.Step, e.Action, e.NodeID)
		if e.CrossReference {
			line += " (jump)"
		}
		if e.NoContent {
			line += " (no content)"
		}
		fmt.Fprintf(w, "%s: %s\n", line, e.Rationale)
	}
}

func flags(res *pageindex.QueryResult) string {
	var f []string
	if res.Truncated {
		f = append(f, "truncated")
	}
	if res.Degraded {
		f = append(f, "degraded")
	}
	if len(f) == 0 {
		return ""
	}
	return " [" + strings.Join(f, ", ") + "]"
}

func sourceIDs(res *pageindex.QueryResult) string {
	ids := make([]string, len(res.Sources))
	for i, s := range res.Sources {
		ids[i] = s.ID
	}
	if len(ids) == 0 {
		return "no sources"
	}
	return strings.Join(ids, ", ")
}
