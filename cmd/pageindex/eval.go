package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/navigate"
)

// Run executes the eval command.
func (c *EvalCmd) Run(deps *Dependencies) error {
	questions, err := ReadQuestions(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s has no questions\n", c.File)
		return pageindex.Errorf(pageindex.EINVALID, "no questions in %q", c.File)
	}

	doc, err := findDocument(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Documents.LoadIndex(deps.Ctx, doc.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	oracle := deps.Oracle
	if c.RPS > 0 {
		oracle = navigate.NewRateLimitedOracle(oracle, c.RPS, c.Concurrency)
	}
	config := navigate.DefaultConfig()
	config.StepLimit = c.Steps
	engine := newEngine(deps, oracle, doc, config)

	results, err := navigate.Batch(deps.Ctx, engine, idx, questions, c.Concurrency)

	var answered, truncated, degraded int
	var total float64
	for i, r := range results {
		if r.Err != nil || r.Result == nil {
			fmt.Fprintf(deps.Stdout, "%d. %s\n   error: %v\n", i+1, r.Query, r.Err)
			continue
		}
		answered++
		total += r.Result.Confidence
		if r.Result.Truncated {
			truncated++
		}
		if r.Result.Degraded {
			degraded++
		}
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %.2f  %d steps  %s%s\n",
			i+1, r.Query, r.Result.Confidence, r.Result.Steps, sourceIDs(r.Result), flags(r.Result))

		if deps.Queries != nil {
			rec := &pageindex.QueryRecord{DocumentID: doc.ID, Query: r.Query, Result: r.Result}
			if err := deps.Queries.CreateQuery(deps.Ctx, rec); err != nil {
				fmt.Fprintf(deps.Stderr, "warning: recording %q: %s\n", r.Query, pageindex.ErrorMessage(err))
			}
		}
	}

	mean := 0.0
	if answered > 0 {
		mean = total / float64(answered)
	}
	fmt.Fprintf(deps.Stdout, "\n%d/%d answered, mean confidence %.2f, %d truncated, %d degraded\n",
		answered, len(results), mean, truncated, degraded)

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// ReadQuestions reads one question per line from path. Blank lines and
// lines starting with # are skipped.
func ReadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	return questions, scanner.Err()
}
