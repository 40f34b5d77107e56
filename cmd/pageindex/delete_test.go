package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/fwojciec/pageindex/cmd/pageindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes document when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		docs := documents(t)
		docs.DeleteDocumentFn = func(_ context.Context, id string) error {
			deletedID = id
			return nil
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Documents: docs}

		err := (&main.DeleteCmd{Name: "manual", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", deletedID)
		assert.Contains(t, stdout.String(), `Deleted document "manual"`)
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Documents: documents(t)}

		err := (&main.DeleteCmd{Name: "manual"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns error for unknown document", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Documents: documents(t)}

		err := (&main.DeleteCmd{Name: "other", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), `document "other" not found`)
	})
}
