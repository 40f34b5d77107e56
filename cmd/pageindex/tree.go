package main

import (
	"fmt"

	"github.com/fwojciec/pageindex"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Documents.LoadIndex(deps.Ctx, doc.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%d sections):\n\n", doc.Name, idx.Len())
	fmt.Fprintln(deps.Stdout, idx.Root().TableOfContents(c.Depth))
	return nil
}
