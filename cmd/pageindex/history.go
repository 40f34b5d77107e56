package main

import (
	"fmt"

	"github.com/fwojciec/pageindex"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.Name)
	if err != nil {
		return err
	}

	recs, err := deps.Queries.FindQueries(deps.Ctx, pageindex.QueryFilter{DocumentID: &doc.ID, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintf(deps.Stdout, "No questions answered for %q yet.\n", doc.Name)
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %.2f  %s%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Result.Confidence,
			r.Query,
			flags(r.Result),
		)
	}
	return nil
}
