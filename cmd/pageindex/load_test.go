package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pageindex"
	main "github.com/fwojciec/pageindex/cmd/pageindex"
	"github.com/fwojciec/pageindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds with detected type and stores document", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "manual.md", "# Manual\n\n## Safety\n\nWear gloves.\n")

		var builtType pageindex.DocumentType
		builders := &mock.IndexBuilderRegistry{
			BuildFn: func(dt pageindex.DocumentType, _ []byte) (*pageindex.Index, error) {
				builtType = dt
				return testIndex(t), nil
			},
		}
		var created *pageindex.Document
		docs := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *pageindex.Document, idx *pageindex.Index) error {
				doc.ID = "doc-9"
				created = doc
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: docs,
			Builders:  builders,
		}

		cmd := &main.LoadCmd{Name: "manual", Path: path}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, pageindex.DocumentTypeMarkdown, builtType)
		require.NotNil(t, created)
		assert.Equal(t, "manual", created.Name)
		assert.Equal(t, pageindex.DocumentTypeMarkdown, created.Type)
		assert.Equal(t, path, created.SourcePath)
		assert.Contains(t, stdout.String(), `Loaded document "manual" (doc-9)`)
		assert.Contains(t, stdout.String(), "3 sections")
	})

	t.Run("explicit type overrides extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "filing.json", `{"company":"Acme"}`)

		var builtType pageindex.DocumentType
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(dt pageindex.DocumentType, _ []byte) (*pageindex.Index, error) {
					builtType = dt
					return testIndex(t), nil
				},
			},
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(context.Context, *pageindex.Document, *pageindex.Index) error { return nil },
			},
		}

		cmd := &main.LoadCmd{Name: "acme", Path: path, Type: "sec-filing"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, pageindex.DocumentTypeSECFiling, builtType)
	})

	t.Run("returns error for undetectable type", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "notes.txt", "plain text")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.LoadCmd{Name: "notes", Path: path}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--type")
	})

	t.Run("returns build error", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bad.yaml", "- not a mapping")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(pageindex.DocumentType, []byte) (*pageindex.Index, error) {
					return nil, pageindex.Errorf(pageindex.EINVALID, "document must be a mapping")
				},
			},
		}

		cmd := &main.LoadCmd{Name: "bad", Path: path}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: document must be a mapping")
	})

	t.Run("force deletes existing document first", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "manual.md", "# Manual\n")

		var calls []string
		docs := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter pageindex.DocumentFilter) ([]*pageindex.Document, error) {
				return []*pageindex.Document{{ID: "old-id", Name: *filter.Name}}, nil
			},
			DeleteDocumentFn: func(_ context.Context, id string) error {
				calls = append(calls, "delete "+id)
				return nil
			},
			CreateDocumentFn: func(_ context.Context, doc *pageindex.Document, _ *pageindex.Index) error {
				calls = append(calls, "create "+doc.Name)
				return nil
			},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Documents: docs,
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(pageindex.DocumentType, []byte) (*pageindex.Index, error) { return testIndex(t), nil },
			},
		}

		cmd := &main.LoadCmd{Name: "manual", Path: path, Force: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"delete old-id", "create manual"}, calls)
	})

	t.Run("reports conflict without force", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "manual.md", "# Manual\n")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(context.Context, *pageindex.Document, *pageindex.Index) error {
					return pageindex.Errorf(pageindex.ECONFLICT, `document "manual" already exists`)
				},
			},
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(pageindex.DocumentType, []byte) (*pageindex.Index, error) { return testIndex(t), nil },
			},
		}

		cmd := &main.LoadCmd{Name: "manual", Path: path}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pageindex.ECONFLICT, pageindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already exists")
	})

	t.Run("counts tokens of indexed content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "manual.md", "# Manual\n")
		var counted string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(context.Context, *pageindex.Document, *pageindex.Index) error { return nil },
			},
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(pageindex.DocumentType, []byte) (*pageindex.Index, error) { return testIndex(t), nil },
			},
			Tokens: &mock.TokenCounter{
				CountTokensFn: func(_ context.Context, text string) (int, error) {
					counted = text
					return 2400, nil
				},
			},
		}

		cmd := &main.LoadCmd{Name: "manual", Path: path, CountTokens: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "Wear gloves.\n\nReplace the filter every 500 hours.", counted)
		assert.Contains(t, stdout.String(), "~2k tokens")
	})
}

func TestLoadCmd_Run_FetchesURL(t *testing.T) {
	t.Parallel()

	t.Run("fetches remote document as html", func(t *testing.T) {
		t.Parallel()

		var fetched string
		var builtType pageindex.DocumentType
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					fetched = url
					return []byte("<h1>Manual</h1>"), nil
				},
			},
			Builders: &mock.IndexBuilderRegistry{
				BuildFn: func(dt pageindex.DocumentType, _ []byte) (*pageindex.Index, error) {
					builtType = dt
					return testIndex(t), nil
				},
			},
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(context.Context, *pageindex.Document, *pageindex.Index) error { return nil },
			},
		}

		cmd := &main.LoadCmd{Name: "manual", Path: "https://example.com/docs/pump"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "https://example.com/docs/pump", fetched)
		assert.Equal(t, pageindex.DocumentTypeHTML, builtType)
	})

	t.Run("reports fetch failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) ([]byte, error) {
					return nil, errors.New("connection refused")
				},
			},
		}

		cmd := &main.LoadCmd{Name: "manual", Path: "https://example.com/pump.md"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "fetching https://example.com/pump.md: connection refused")
	})
}
