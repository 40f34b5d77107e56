package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fwojciec/pageindex"
)

var _ pageindex.Oracle = (*ManualOracle)(nil)

// ManualOracle lets a person at the terminal make each navigation
// decision. Commands are "d <id or number>", "e", "b <id>" and "c", each
// optionally followed by " -- <rationale>".
type ManualOracle struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	out     io.Writer
}

// NewManualOracle reads decisions from in and writes prompts to out.
func NewManualOracle(in io.Reader, out io.Writer) *ManualOracle {
	return &ManualOracle{scanner: bufio.NewScanner(in), out: out}
}

// Judge shows the node and reads one decision. Closed input completes
// navigation.
func (o *ManualOracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return pageindex.Decision{}, err
	}

	fmt.Fprintf(o.out, "\n[step %d, %d left] %s\n", nav.Step, nav.StepsRemaining, query)
	fmt.Fprintf(o.out, "%s: %s\n", node.ID, node.Title)
	if node.Summary != "" {
		fmt.Fprintf(o.out, "  %s\n", node.Summary)
	}
	if node.Preview != "" {
		fmt.Fprintf(o.out, "  > %s\n", node.Preview)
	}
	for i, c := range node.Children {
		fmt.Fprintf(o.out, "  %d. %s: %s\n", i+1, c.ID, c.Title)
	}
	for _, r := range node.CrossReferences {
		fmt.Fprintf(o.out, "  see %s: %s\n", r.ID, r.Title)
	}
	fmt.Fprint(o.out, "(d <child>, e, b <id>, c) > ")

	if !o.scanner.Scan() {
		if err := o.scanner.Err(); err != nil {
			return pageindex.Decision{}, err
		}
		return pageindex.Complete("input closed"), nil
	}
	return ParseManualDecision(o.scanner.Text(), node)
}

// ParseManualDecision parses one line typed at the terminal. A numeric
// descend target picks the child at that 1-based position.
func ParseManualDecision(line string, node pageindex.NodeDescriptor) (pageindex.Decision, error) {
	rationale := "chosen at the terminal"
	if cmd, why, ok := strings.Cut(line, "--"); ok {
		line = cmd
		if why = strings.TrimSpace(why); why != "" {
			rationale = why
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return pageindex.Decision{}, pageindex.Errorf(pageindex.EORACLE, "empty command")
	}
	target := strings.Join(fields[1:], " ")

	switch strings.ToLower(fields[0]) {
	case "d", "descend":
		if n, err := strconv.Atoi(target); err == nil && n >= 1 && n <= len(node.Children) {
			target = node.Children[n-1].ID
		}
		return pageindex.Descend(target, rationale), nil
	case "e", "extract":
		return pageindex.Extract(rationale), nil
	case "b", "backtrack":
		return pageindex.Backtrack(target, rationale), nil
	case "c", "complete":
		return pageindex.Complete(rationale), nil
	}
	return pageindex.Decision{}, pageindex.Errorf(pageindex.EORACLE, "unknown command %q", fields[0])
}
