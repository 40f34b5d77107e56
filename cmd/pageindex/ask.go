package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/navigate"
	pislog "github.com/fwojciec/pageindex/slog"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.Name)
	if err != nil {
		return err
	}

	engine := newEngine(deps, deps.Oracle, doc, c.config())
	var nav pageindex.Navigator = engine
	if deps.Logger != nil {
		nav = pislog.NewLoggingNavigator(engine, deps.Logger)
	}
	asker := navigate.NewAsker(deps.Documents, deps.Queries, nav)

	res, err := asker.Ask(deps.Ctx, doc.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	RenderResult(deps.Stdout, res, c.Trace)
	return nil
}

func (c *AskCmd) config() navigate.Config {
	config := navigate.DefaultConfig()
	config.StepLimit = c.Steps
	config.MaxRetries = c.Retries
	config.PreviewLength = c.Preview
	config.AllowCrossReferenceJumps = !c.NoXref
	config.AllowVisitedJumps = c.VisitedJumps
	return config
}
