package searcher

import (
	"testing"

	"stepsearch/problem"

	"github.com/stretchr/testify/require"
)

type vertex string

func (v vertex) Key() string {
	return string(v)
}

func (v vertex) Board() problem.BoardState {
	return nil
}

type edge struct {
	to   vertex
	cost float64
}

// weightedGraph is a small explicit state space
type weightedGraph struct {
	start vertex
	goal  vertex
	edges map[vertex][]edge
	h     map[vertex]float64
}

func (g weightedGraph) Initial() problem.State {
	return g.start
}

func (g weightedGraph) Actions(s problem.State) []problem.Action {
	actions := make([]problem.Action, len(g.edges[s.(vertex)]))
	for i := range actions {
		actions[i] = problem.Action(i)
	}
	return actions
}

func (g weightedGraph) Result(s problem.State, a problem.Action) problem.State {
	return g.edges[s.(vertex)][a].to
}

func (g weightedGraph) StepCost(s problem.State, a problem.Action) float64 {
	return g.edges[s.(vertex)][a].cost
}

func (g weightedGraph) IsGoal(s problem.State) bool {
	return s.(vertex) == g.goal
}

func (g weightedGraph) Heuristic(s problem.State) float64 {
	return g.h[s.(vertex)]
}

func (g weightedGraph) Label(s problem.State) string {
	return string(s.(vertex))
}

// drain steps alg until it terminates and returns every touched node
func drain(t *testing.T, alg Algorithm, limit int) []*Node {
	t.Helper()
	var touched []*Node
	for i := 0; i < limit && !alg.Status().Terminal(); i++ {
		if n := alg.Step(); n != nil {
			touched = append(touched, n)
		}
	}
	require.True(t, alg.Status().Terminal(), "Search should terminate within %d steps", limit)
	return touched
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// distance is a plain breadth-first reference for the true optimal move count
func distance(p problem.Problem) int {
	type item struct {
		state problem.State
		depth int
	}
	seen := map[string]bool{p.Initial().Key(): true}
	queue := []item{{p.Initial(), 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if p.IsGoal(cur.state) {
			return cur.depth
		}
		for _, a := range p.Actions(cur.state) {
			next := p.Result(cur.state, a)
			if !seen[next.Key()] {
				seen[next.Key()] = true
				queue = append(queue, item{next, cur.depth + 1})
			}
		}
	}
	return -1
}

// textbookTree is the classic three-by-three game tree with root value 3
func textbookTree(t *testing.T) *problem.CustomTree {
	t.Helper()
	leaf := func(id string, v float64) *problem.TreeNode {
		return &problem.TreeNode{ID: id, Name: id, Value: v, CostToParent: 1}
	}
	root := &problem.TreeNode{ID: "A", Name: "A", Children: []*problem.TreeNode{
		{ID: "B", Name: "B", CostToParent: 1, Children: []*problem.TreeNode{leaf("b1", 3), leaf("b2", 12), leaf("b3", 8)}},
		{ID: "C", Name: "C", CostToParent: 1, Children: []*problem.TreeNode{leaf("c1", 2), leaf("c2", 4), leaf("c3", 6)}},
		{ID: "D", Name: "D", CostToParent: 1, Children: []*problem.TreeNode{leaf("d1", 14), leaf("d2", 5), leaf("d3", 2)}},
	}}
	tree, err := problem.NewCustomTree(root)
	require.NoError(t, err)
	return tree
}

func scenarioPuzzle(t *testing.T) *problem.Puzzle {
	t.Helper()
	p, err := problem.NewPuzzle(problem.PuzzleBoard(1, 2, 3, 4, 8, 0, 7, 6, 5), problem.PuzzleBoard(1, 2, 3, 4, 5, 6, 7, 8, 0), problem.Manhattan)
	require.NoError(t, err)
	return p
}
