package searcher

import (
	"fmt"

	"stepsearch/problem"
)

// GraphSearch is the frontier-search engine behind breadth-first,
// depth-first, uniform-cost, greedy best-first and A*. Nodes are keyed by
// state, so each state appears at most once in the tree.
type GraphSearch struct {
	kind      Kind
	problem   problem.Problem
	frontier  Frontier
	explored  Explored
	root      *Node
	goal      *Node
	status    Status
	generated int
}

func NewGraphSearch(p problem.Problem, kind Kind) *GraphSearch {
	var frontier Frontier
	switch kind {
	case BFS:
		frontier = NewQueue()
	case DFS:
		frontier = NewStack()
	case UCS:
		frontier = NewPriorityFrontier(byCost)
	case Greedy:
		frontier = NewPriorityFrontier(byHeuristic)
	case AStar:
		frontier = NewPriorityFrontier(byEstimate)
	default:
		panic(fmt.Sprintf("not a frontier search: %q", kind))
	}
	return &GraphSearch{
		kind:     kind,
		problem:  p,
		frontier: frontier,
		explored: make(Explored),
	}
}

func (g *GraphSearch) Kind() Kind {
	return g.kind
}

func (g *GraphSearch) Status() Status {
	return g.status
}

func (g *GraphSearch) Tree() *Node {
	return g.root
}

func (g *GraphSearch) Goal() *Node {
	return g.goal
}

func (g *GraphSearch) Frontier() Frontier {
	return g.frontier
}

func (g *GraphSearch) Attributes() Attributes {
	return Attributes{
		"frontier":  float64(g.frontier.Len()),
		"explored":  float64(len(g.explored)),
		"generated": float64(g.generated),
	}
}

// Step pops the next frontier node. A goal is returned unexpanded and
// completes the search; otherwise the node is expanded and returned.
func (g *GraphSearch) Step() *Node {
	if g.status.Terminal() {
		return nil
	}
	if g.status == Ready {
		g.root = newRoot(g.problem, stateKeyed)
		g.frontier.Push(g.root)
		g.generated++
		g.status = Running
	}

	node := g.frontier.Pop()
	if node == nil {
		g.status = Failed
		return nil
	}
	if g.problem.IsGoal(node.State) {
		g.goal = node
		g.status = Completed
		return node
	}

	g.explored.Add(node.ID)
	for _, action := range g.problem.Actions(node.State) {
		child := newChild(g.problem, node, action, stateKeyed)
		if g.explored.Has(child.ID) || g.frontier.Lookup(child.ID) != nil {
			continue
		}
		node.addChild(child)
		g.frontier.Push(child)
		g.generated++
	}
	return node
}
