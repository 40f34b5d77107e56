package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/pageindex"
	main "github.com/fwojciec/pageindex/cmd/pageindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers every question and records results", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "questions.txt", "# pump questions\nHow often is the filter replaced?\n\nWhat is the service interval?\n")
		rec := &recorder{}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents(t),
			Queries:   rec.service(),
			Oracle:    maintenanceOracle(),
		}

		cmd := &main.EvalCmd{Name: "manual", File: path, Concurrency: 2, RPS: 1000, Steps: 15}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "1. How often is the filter replaced?")
		assert.Contains(t, out, "2. What is the service interval?")
		assert.Contains(t, out, "0.50  3 steps  maintenance")
		assert.Contains(t, out, "2/2 answered, mean confidence 0.50, 0 truncated, 0 degraded")
		assert.Len(t, rec.records(), 2)
	})

	t.Run("returns error for empty question file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "questions.txt", "# nothing yet\n\n")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documents(t),
			Oracle:    maintenanceOracle(),
		}

		err := (&main.EvalCmd{Name: "manual", File: path, Concurrency: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "has no questions")
	})
}

func TestReadQuestions(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "q.txt", "  first  \n# comment\n\nsecond\n")

	questions, err := main.ReadQuestions(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, questions)
}
