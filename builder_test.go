package pageindex_test

import (
	"testing"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDocumentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want pageindex.DocumentType
		ok   bool
	}{
		{"guide.md", pageindex.DocumentTypeMarkdown, true},
		{"10k.HTML", pageindex.DocumentTypeHTML, true},
		{"sop.json", pageindex.DocumentTypeOutline, true},
		{"sop.yml", pageindex.DocumentTypeOutline, true},
		{"scan.pdf", "", false},
	}

	for _, tt := range tests {
		got, ok := pageindex.DetectDocumentType(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
	}
}

func TestBuilderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to the registered builder", func(t *testing.T) {
		t.Parallel()

		reg := pageindex.NewBuilderRegistry()
		reg.Register(pageindex.DocumentTypeSOP, pageindex.IndexBuilderFunc(func(data []byte) (*pageindex.Index, error) {
			return pageindex.NewIndex(string(data), nil, &pageindex.Node{ID: "root"})
		}))

		idx, err := reg.Build(pageindex.DocumentTypeSOP, []byte("sop-7"))

		require.NoError(t, err)
		assert.Equal(t, "sop-7", idx.DocumentID)
	})

	t.Run("returns EINVALID for unknown type", func(t *testing.T) {
		t.Parallel()

		reg := pageindex.NewBuilderRegistry()

		_, err := reg.Build(pageindex.DocumentTypeHTML, nil)

		require.Error(t, err)
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
		assert.Nil(t, reg.Get(pageindex.DocumentTypeHTML))
	})

	t.Run("lists types sorted", func(t *testing.T) {
		t.Parallel()

		reg := pageindex.NewBuilderRegistry()
		noop := pageindex.IndexBuilderFunc(func([]byte) (*pageindex.Index, error) { return nil, nil })
		reg.Register(pageindex.DocumentTypeSOP, noop)
		reg.Register(pageindex.DocumentTypeHTML, noop)
		reg.Register(pageindex.DocumentTypeMarkdown, noop)

		assert.Equal(t, []pageindex.DocumentType{
			pageindex.DocumentTypeHTML,
			pageindex.DocumentTypeMarkdown,
			pageindex.DocumentTypeSOP,
		}, reg.List())
	})

	t.Run("register replaces existing builder", func(t *testing.T) {
		t.Parallel()

		var calls []string
		first := &mock.IndexBuilder{BuildFn: func([]byte) (*pageindex.Index, error) {
			calls = append(calls, "first")
			return nil, nil
		}}
		second := &mock.IndexBuilder{BuildFn: func([]byte) (*pageindex.Index, error) {
			calls = append(calls, "second")
			return nil, nil
		}}

		reg := pageindex.NewBuilderRegistry()
		reg.Register(pageindex.DocumentTypeOutline, first)
		reg.Register(pageindex.DocumentTypeOutline, second)
		_, err := reg.Build(pageindex.DocumentTypeOutline, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"second"}, calls)
		assert.Len(t, reg.List(), 1)
	})
}
