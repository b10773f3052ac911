package searcher

import (
	"bytes"
	"testing"

	"stepsearch/problem"

	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	t.Run("carrying pruning annotations", func(t *testing.T) {
		tree := textbookTree(t)
		g := NewGameSearch(tree, 0, true)
		drain(t, g, 100)

		out := Export(tree, g.Tree())

		require.Equal(t, "A", out.ID)
		require.Equal(t, 3.0, out.Value)
		require.NotNil(t, out.Alpha)
		require.Equal(t, 3.0, *out.Alpha)
		require.Nil(t, out.Beta, "Infinite bounds are omitted")

		c := out.Children[1]
		require.Equal(t, "C", c.ID)
		require.Equal(t, 1.0, c.CostToParent)
		require.Equal(t, 2.0, c.Value)
		require.True(t, c.Children[1].IsPruned)
		require.Equal(t, "c1", c.Children[2].PruningTriggeredBy)
		require.Nil(t, c.Children[1].Alpha, "Pruned nodes were never given a window")
	})

	t.Run("surviving an encode and decode", func(t *testing.T) {
		tree := textbookTree(t)
		g := NewGameSearch(tree, 0, true)
		drain(t, g, 100)

		var buf bytes.Buffer
		require.NoError(t, problem.EncodeTree(&buf, Export(tree, g.Tree())))
		decoded, err := problem.DecodeTree(&buf)
		require.NoError(t, err)

		replayed, err := problem.NewCustomTree(decoded)
		require.NoError(t, err, "An exported tree should load as a custom tree")
		require.Len(t, replayed.Root().Children, 3)
		require.Equal(t, "c1", replayed.Root().Children[1].Children[1].PruningTriggeredBy)
	})

	t.Run("exporting board states and path costs of a graph search", func(t *testing.T) {
		p := scenarioPuzzle(t)
		g := NewGraphSearch(p, AStar)
		drain(t, g, 200000)

		out := Export(p, g.Tree())

		require.Equal(t, p.Initial().Board(), out.BoardState)
		require.Zero(t, out.CostToParent)
		for _, child := range out.Children {
			require.Equal(t, 1.0, child.CostToParent)
			require.Len(t, child.BoardState, problem.BoardLen)
		}
	})

	t.Run("using the mean outcome of a tree search", func(t *testing.T) {
		m := NewTreeSearch(winningGrid(t), WithIterations(50))
		drain(t, m, 100)

		out := Export(m.problem, m.Tree())

		require.Equal(t, m.Tree().Mean(), out.Value)
		for i, child := range out.Children {
			require.Equal(t, m.Tree().Children[i].Mean(), child.Value)
		}
	})

	t.Run("exporting nothing before the first step", func(t *testing.T) {
		require.Nil(t, Export(textbookTree(t), nil))
	})
}
