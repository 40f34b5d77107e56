package pageindex_test

import (
	"testing"

	"github.com/fwojciec/pageindex"
	"github.com/stretchr/testify/assert"
)

func TestNode_HasContent(t *testing.T) {
	t.Parallel()

	assert.True(t, (&pageindex.Node{Content: "Net revenue was $4.2B."}).HasContent())
	assert.False(t, (&pageindex.Node{Content: "  \n"}).HasContent())
	assert.False(t, (&pageindex.Node{}).HasContent())
}

func TestNode_Child(t *testing.T) {
	t.Parallel()

	child := &pageindex.Node{ID: "3.2", Title: "Inventory"}
	parent := &pageindex.Node{ID: "3", Children: []*pageindex.Node{{ID: "3.1"}, child}}

	assert.Same(t, child, parent.Child("3.2"))
	assert.Nil(t, parent.Child("4"))
	assert.False(t, parent.IsLeaf())
	assert.True(t, child.IsLeaf())
}

func TestNode_ChildTitles(t *testing.T) {
	t.Parallel()

	n := &pageindex.Node{Children: []*pageindex.Node{{Title: "Scope"}, {Title: "Procedure"}}}

	assert.Equal(t, []string{"Scope", "Procedure"}, n.ChildTitles())
	assert.Empty(t, (&pageindex.Node{}).ChildTitles())
}

func TestNode_Preview(t *testing.T) {
	t.Parallel()

	t.Run("returns content when short", func(t *testing.T) {
		t.Parallel()

		n := &pageindex.Node{Content: "short"}
		assert.Equal(t, "short", n.Preview(10))
	})

	t.Run("truncates by runes", func(t *testing.T) {
		t.Parallel()

		n := &pageindex.Node{Content: "äöüäöü"}
		assert.Equal(t, "äöü...", n.Preview(3))
	})

	t.Run("returns empty for zero limit", func(t *testing.T) {
		t.Parallel()

		n := &pageindex.Node{Content: "text"}
		assert.Empty(t, n.Preview(0))
	})
}

func TestNode_TableOfContents(t *testing.T) {
	t.Parallel()

	root := &pageindex.Node{ID: "root", Title: "Manual", Children: []*pageindex.Node{
		{ID: "1", Title: "Intro", Level: 1, Children: []*pageindex.Node{
			{ID: "1.1", Title: "Scope", Level: 2, Children: []*pageindex.Node{
				{ID: "1.1.1", Title: "Deep", Level: 3},
			}},
		}},
		{ID: "2", Title: "Procedure", Level: 1},
	}}

	toc := root.TableOfContents(2)

	assert.Equal(t, "- root: Manual\n  - 1: Intro\n    - 1.1: Scope\n  - 2: Procedure", toc)
}
