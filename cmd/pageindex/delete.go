package main

import (
	"fmt"

	"github.com/fwojciec/pageindex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pageindex.Errorf(pageindex.EINVALID, "use --force to confirm deletion")
	}

	doc, err := findDocument(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q\n", doc.Name)
	return nil
}
