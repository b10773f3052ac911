package searcher

import (
	"math"
	"strconv"

	"stepsearch/problem"
)

// NoAction marks the root, which no action produced
const NoAction problem.Action = -1

// Node wraps a state with its search bookkeeping. Children only grow; nodes
// are never dropped from the tree once created.
type Node struct {
	ID       string
	Name     string
	State    problem.State
	Action   problem.Action
	Parent   *Node
	Children []*Node
	G        float64 // path cost from the root
	H        float64 // heuristic estimate
	Depth    int

	// Adversarial search annotations
	Value     float64
	Evaluated bool
	Alpha     float64
	Beta      float64
	Bounded   bool
	Pruned    bool
	PrunedBy  string
	Cutoff    bool

	// MCTS statistics
	Visits   int
	ValueSum float64

	untried     []problem.Action
	perspective float64
}

func (n *Node) F() float64 {
	return n.G + n.H
}

// Mean is the average backed-up outcome, 0 for an unvisited node
func (n *Node) Mean() float64 {
	if n.Visits == 0 {
		return 0
	}
	return n.ValueSum / float64(n.Visits)
}

// Path returns the actions leading from the root to n
func (n *Node) Path() []problem.Action {
	var path []problem.Action
	for node := n; node.Parent != nil; node = node.Parent {
		path = append(path, node.Action)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Size counts n and its descendants
func (n *Node) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

// Find returns the first node with the given id in pre-order
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// onPath reports whether key names n or one of its ancestors
func (n *Node) onPath(key string) bool {
	for node := n; node != nil; node = node.Parent {
		if node.State.Key() == key {
			return true
		}
	}
	return false
}

// identity assigns node ids. Graph search keys nodes by state so duplicates
// collapse; tree search mints a fresh id per node since the same state may
// legitimately appear in several branches.
type identity func(problem.State) string

func stateKeyed(s problem.State) string {
	return s.Key()
}

func instanceKeyed(p problem.Problem) identity {
	if authored, ok := p.(problem.Authored); ok {
		return authored.AuthoredID
	}
	seq := 0
	return func(problem.State) string {
		seq++
		return "n" + strconv.Itoa(seq)
	}
}

func newRoot(p problem.Problem, id identity) *Node {
	state := p.Initial()
	return &Node{
		ID:     id(state),
		Name:   p.Label(state),
		State:  state,
		Action: NoAction,
		H:      p.Heuristic(state),
		Alpha:  math.Inf(-1),
		Beta:   math.Inf(1),
	}
}

// newChild builds the node reached from parent by action. The caller decides
// whether it joins the tree.
func newChild(p problem.Problem, parent *Node, action problem.Action, id identity) *Node {
	state := p.Result(parent.State, action)
	return &Node{
		ID:     id(state),
		Name:   p.Label(state),
		State:  state,
		Action: action,
		G:      parent.G + p.StepCost(parent.State, action),
		H:      p.Heuristic(state),
		Depth:  parent.Depth + 1,
		Alpha:  math.Inf(-1),
		Beta:   math.Inf(1),
	}
}
