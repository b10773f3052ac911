package searcher

import (
	"testing"

	"stepsearch/problem"

	"github.com/stretchr/testify/require"
)

// shallowGoalTree has its only goal two levels down
func shallowGoalTree(t *testing.T) *problem.CustomTree {
	t.Helper()
	root := &problem.TreeNode{ID: "R", Name: "R", Children: []*problem.TreeNode{
		{ID: "A", Name: "A", CostToParent: 1, Children: []*problem.TreeNode{
			{ID: "a1", Name: "a1", CostToParent: 1},
			{ID: "a2", Name: "a2", CostToParent: 1, IsGoal: true},
		}},
		{ID: "B", Name: "B", CostToParent: 1, Children: []*problem.TreeNode{
			{ID: "b1", Name: "b1", CostToParent: 1},
		}},
	}}
	tree, err := problem.NewCustomTree(root)
	require.NoError(t, err)
	return tree
}

func TestIDS(t *testing.T) {
	t.Run("finding the goal once the bound reaches its depth", func(t *testing.T) {
		d := NewIDS(shallowGoalTree(t), 0, 0)

		got := drain(t, d, 100)

		require.Equal(t, Completed, d.Status())
		require.Equal(t, 2.0, d.Bound())
		require.Equal(t, 2.0, d.Attributes()["restarts"])
		require.Equal(t, []string{"R", "R", "A", "B", "R", "A", "a1", "a2"}, ids(got))
	})

	t.Run("marking nodes at the bound as cutoff points", func(t *testing.T) {
		d := NewIDS(shallowGoalTree(t), 0, 0)

		d.Step()
		require.True(t, d.Tree().Cutoff, "The root is cut off at bound zero")

		for i := 0; i < 3; i++ {
			d.Step()
		}
		require.True(t, d.Tree().Find("A").Cutoff)
		require.True(t, d.Tree().Find("B").Cutoff)
	})

	t.Run("failing when the goal lies beyond the depth limit", func(t *testing.T) {
		d := NewIDS(shallowGoalTree(t), 1, 0)

		drain(t, d, 100)

		require.Equal(t, Failed, d.Status())
	})

	t.Run("failing when a round cuts nothing off", func(t *testing.T) {
		d := NewIDS(textbookTree(t), 0, 0)

		drain(t, d, 100)

		require.Equal(t, Failed, d.Status())
		require.Equal(t, 2.0, d.Bound(), "The whole tree fits within depth two")
	})

	t.Run("rebuilding the tree on every restart", func(t *testing.T) {
		d := NewIDS(shallowGoalTree(t), 0, 0)

		d.Step()
		first := d.Tree()
		d.Step()

		require.NotSame(t, first, d.Tree())
		require.True(t, first.Cutoff)
		require.False(t, d.Tree().Cutoff, "The restarted root is expanded under the raised bound")
		require.Len(t, d.Tree().Children, 2)
	})

	t.Run("stopping at the node limit", func(t *testing.T) {
		d := NewIDS(scenarioPuzzle(t), 0, 5)

		drain(t, d, 1000)

		require.Equal(t, Failed, d.Status())
		require.Equal(t, 5.0, d.Attributes()["expanded"])
	})
}

func TestIDAStar(t *testing.T) {
	t.Run("reaching the optimal puzzle solution", func(t *testing.T) {
		p := scenarioPuzzle(t)
		d := NewIDAStar(p, 0)

		got := drain(t, d, 500000)

		goal := got[len(got)-1]
		require.Equal(t, Completed, d.Status())
		require.True(t, p.IsGoal(goal.State))
		require.Equal(t, float64(distance(p)), goal.G)
		require.GreaterOrEqual(t, d.Bound(), p.Heuristic(p.Initial()), "The bound never drops below the root estimate")
	})

	t.Run("starting the bound at the root estimate", func(t *testing.T) {
		p := scenarioPuzzle(t)
		d := NewIDAStar(p, 0)

		d.Step()

		require.Equal(t, p.Heuristic(p.Initial()), d.Bound())
	})

	t.Run("raising the bound to the smallest exceeding estimate", func(t *testing.T) {
		tree := weightedGraph{
			start: "S",
			goal:  "G",
			edges: map[vertex][]edge{
				"S": {{"A", 2}, {"B", 3}},
				"A": {{"G", 5}},
			},
			h: map[vertex]float64{"S": 1},
		}
		d := NewIDAStar(tree, 0)

		for d.Bound() < 2 && !d.Status().Terminal() {
			d.Step()
		}

		require.Equal(t, 2.0, d.Bound(), "A at f=2 is the cheapest node beyond the first bound")
	})

	t.Run("failing at the node limit", func(t *testing.T) {
		d := NewIDAStar(scenarioPuzzle(t), 3)

		drain(t, d, 1000)

		require.Equal(t, Failed, d.Status())
	})
}
