package yaml_test

import (
	"testing"

	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sopYAML = `
document_id: SOP-SC-001
title: Assortment Planning Procedure
version: "3.2"
effective_date: 2024-01-15
classification: Internal
sections:
  "1":
    title: Purpose
    content: Defines how assortments are planned.
  "4":
    title: Replenishment
    subsections:
      "4.2":
        title: Safety Stock
        content: Hold 14 days of cover. Thresholds are listed in Appendix B.
appendices:
  AppendixA:
    title: Glossary
    content: SKU means stock keeping unit.
  AppendixB:
    title: Thresholds
    content: Category A 14 days.
`

func TestSOPBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds the procedure tree", func(t *testing.T) {
		t.Parallel()

		idx, err := yaml.SOPBuilder{}.Build([]byte(sopYAML))
		require.NoError(t, err)

		assert.Equal(t, "SOP-SC-001", idx.DocumentID)
		root := idx.Root()
		assert.Equal(t, "Assortment Planning Procedure", root.Title)
		assert.Equal(t, "Document ID: SOP-SC-001\nVersion: 3.2\nEffective Date: 2024-01-15\nClassification: Internal", root.Content)
		assert.Equal(t, []string{"Purpose", "Replenishment", "Appendices"}, root.ChildTitles())

		appendices, err := idx.Node("Appendices")
		require.NoError(t, err)
		assert.Equal(t, []string{"Glossary", "Thresholds"}, appendices.ChildTitles())
	})

	t.Run("detects appendix references", func(t *testing.T) {
		t.Parallel()

		idx, err := yaml.SOPBuilder{}.Build([]byte(sopYAML))
		require.NoError(t, err)

		stock, err := idx.Node("4.2")
		require.NoError(t, err)
		assert.Equal(t, []string{"AppendixB"}, stock.CrossReferences)
	})

	t.Run("records document control metadata", func(t *testing.T) {
		t.Parallel()

		idx, err := yaml.SOPBuilder{}.Build([]byte(sopYAML))
		require.NoError(t, err)

		assert.Equal(t, yaml.SOPDocumentType, idx.DocumentType())
		assert.Equal(t, "3.2", idx.Metadata["version"])
		assert.Equal(t, "Internal", idx.Metadata["classification"])
	})

	t.Run("defaults missing control fields", func(t *testing.T) {
		t.Parallel()

		idx, err := yaml.SOPBuilder{}.Build([]byte(`{"document_type": "Warehouse Procedure", "sections": {"1": {"title": "Scope"}}}`))
		require.NoError(t, err)

		assert.Equal(t, "unknown", idx.DocumentID)
		assert.Equal(t, "Standard Operating Procedure", idx.Root().Title)
		assert.Contains(t, idx.Root().Content, "Version: N/A")
		assert.Equal(t, "Warehouse Procedure", idx.DocumentType())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.SOPBuilder{}.Build([]byte("- a\n- b\n"))
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
	})
}
