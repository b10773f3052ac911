package searcher

import (
	"math"

	"stepsearch/problem"
)

// frame is a partially visited node on the minimax traversal stack
type frame struct {
	node       *Node
	actions    []problem.Action
	next       int
	alpha      float64
	beta       float64
	best       float64
	maximizing bool
}

// GameSearch runs bounded-depth minimax, optionally with alpha-beta pruning,
// as an explicit pre-order traversal so it can be resumed one node at a time.
type GameSearch struct {
	problem  problem.Adversarial
	maxDepth int
	pruning  bool
	ids      identity
	root     *Node
	stack    []*frame
	status   Status
	visited  int
	pruned   int
	cutoffs  int
}

// NewGameSearch builds a minimax search. A maxDepth of zero or less leaves the
// depth unbounded.
func NewGameSearch(p problem.Adversarial, maxDepth int, pruning bool) *GameSearch {
	if maxDepth <= 0 {
		maxDepth = math.MaxInt
	}
	return &GameSearch{
		problem:  p,
		maxDepth: maxDepth,
		pruning:  pruning,
		ids:      instanceKeyed(p),
	}
}

func (m *GameSearch) Kind() Kind {
	if m.pruning {
		return AlphaBeta
	}
	return Minimax
}

func (m *GameSearch) Status() Status {
	return m.status
}

func (m *GameSearch) Tree() *Node {
	return m.root
}

func (m *GameSearch) Attributes() Attributes {
	attrs := Attributes{
		"visited": float64(m.visited),
		"pruned":  float64(m.pruned),
		"cutoffs": float64(m.cutoffs),
		"stack":   float64(len(m.stack)),
	}
	if m.status == Completed {
		attrs["rootValue"] = m.root.Value
	}
	return attrs
}

// Step visits one node, or backs up one node whose children are all done.
// Visiting a leaf evaluates it at once.
func (m *GameSearch) Step() *Node {
	if m.status.Terminal() {
		return nil
	}

	if m.status == Ready {
		m.status = Running
		m.root = newRoot(m.problem, m.ids)
		m.root.Bounded = true
		m.visited++
		if m.descend(m.root, m.root.Alpha, m.root.Beta) {
			m.status = Completed
		}
		return m.root
	}

	top := m.stack[len(m.stack)-1]
	if top.next < len(top.actions) {
		action := top.actions[top.next]
		top.next++
		child := newChild(m.problem, top.node, action, m.ids)
		top.node.addChild(child)
		m.visited++
		if m.descend(child, top.alpha, top.beta) {
			m.backup(top, child)
		}
		return child
	}

	// Every child is done, back the value up
	m.stack = m.stack[:len(m.stack)-1]
	node := top.node
	node.Value = top.best
	node.Evaluated = true
	if len(m.stack) == 0 {
		m.status = Completed
		return node
	}
	m.backup(m.stack[len(m.stack)-1], node)
	return node
}

// descend either evaluates a leaf (returning true) or pushes a frame for an
// internal node with the inherited bounds.
func (m *GameSearch) descend(node *Node, alpha, beta float64) bool {
	node.Alpha, node.Beta, node.Bounded = alpha, beta, true

	var actions []problem.Action
	terminal := m.problem.IsTerminal(node.State)
	if !terminal {
		actions = m.problem.Actions(node.State)
	}
	switch {
	case terminal || len(actions) == 0:
		node.Value = m.problem.Utility(node.State)
	case node.Depth >= m.maxDepth:
		node.Value = m.problem.Heuristic(node.State)
		node.Cutoff = true
		m.cutoffs++
	default:
		maximizing := m.problem.IsMaximizing(node.State)
		best := math.Inf(1)
		if maximizing {
			best = math.Inf(-1)
		}
		m.stack = append(m.stack, &frame{
			node:       node,
			actions:    actions,
			alpha:      alpha,
			beta:       beta,
			best:       best,
			maximizing: maximizing,
		})
		return false
	}
	node.Evaluated = true
	return true
}

// backup folds a finished child's value into its parent's frame and prunes
// the parent's remaining actions once the bounds cross.
func (m *GameSearch) backup(f *frame, child *Node) {
	if f.maximizing {
		f.best = math.Max(f.best, child.Value)
		f.alpha = math.Max(f.alpha, f.best)
	} else {
		f.best = math.Min(f.best, child.Value)
		f.beta = math.Min(f.beta, f.best)
	}
	f.node.Alpha, f.node.Beta = f.alpha, f.beta

	if !m.pruning || f.beta > f.alpha || f.next >= len(f.actions) {
		return
	}
	for _, action := range f.actions[f.next:] {
		sibling := newChild(m.problem, f.node, action, m.ids)
		sibling.Pruned = true
		sibling.PrunedBy = child.ID
		f.node.addChild(sibling)
		m.pruned++
	}
	f.next = len(f.actions)
}
