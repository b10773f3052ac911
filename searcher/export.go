package searcher

import (
	"math"

	"stepsearch/problem"
)

// Export converts a search tree into the interchange format
func Export(p problem.Problem, n *Node) *problem.TreeNode {
	if n == nil {
		return nil
	}

	out := &problem.TreeNode{
		ID:                 n.ID,
		Name:               n.Name,
		Value:              exportValue(n),
		IsGoal:             p.IsGoal(n.State),
		BoardState:         n.State.Board(),
		IsPruned:           n.Pruned,
		PruningTriggeredBy: n.PrunedBy,
		IsCutoffPoint:      n.Cutoff,
		Children:           make([]*problem.TreeNode, 0, len(n.Children)),
	}
	if n.Parent != nil {
		out.CostToParent = n.G - n.Parent.G
	}
	if n.Bounded {
		out.Alpha = finite(n.Alpha)
		out.Beta = finite(n.Beta)
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, Export(p, child))
	}
	return out
}

// exportValue picks the most informed value a node carries: a backed-up
// minimax value, an MCTS mean, or the heuristic estimate.
func exportValue(n *Node) float64 {
	switch {
	case n.Evaluated:
		return n.Value
	case n.Visits > 0:
		return n.Mean()
	}
	return n.H
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
