package searcher

import (
	"math"

	"stepsearch/problem"
)

// Deepening restarts a bounded depth-first search with a growing bound:
// depth for IDS, f = g+h for IDA*. Every bound rebuilds the tree from the
// initial state; nothing is remembered across bounds.
type Deepening struct {
	kind      Kind
	problem   problem.Problem
	maxDepth  int
	nodeLimit int
	ids       identity

	bound    float64
	next     float64 // smallest f above the bound seen this round (IDA*)
	exceeded bool    // some node was cut off this round
	root     *Node
	stack    []*Node
	status   Status
	expanded int
	restarts int
}

// NewIDS returns iterative deepening search. The bound grows until maxDepth
// when positive; nodeLimit caps total expansions when positive.
func NewIDS(p problem.Problem, maxDepth, nodeLimit int) *Deepening {
	return &Deepening{
		kind:      IDS,
		problem:   p,
		maxDepth:  maxDepth,
		nodeLimit: nodeLimit,
		ids:       instanceKeyed(p),
	}
}

// NewIDAStar returns iterative deepening A*. nodeLimit caps total expansions
// when positive, guaranteeing termination on unsolvable instances.
func NewIDAStar(p problem.Problem, nodeLimit int) *Deepening {
	return &Deepening{
		kind:      IDAStar,
		problem:   p,
		nodeLimit: nodeLimit,
		ids:       instanceKeyed(p),
	}
}

func (d *Deepening) Kind() Kind {
	return d.kind
}

func (d *Deepening) Status() Status {
	return d.status
}

func (d *Deepening) Tree() *Node {
	return d.root
}

func (d *Deepening) Bound() float64 {
	return d.bound
}

func (d *Deepening) Attributes() Attributes {
	return Attributes{
		"bound":    d.bound,
		"expanded": float64(d.expanded),
		"restarts": float64(d.restarts),
		"stack":    float64(len(d.stack)),
	}
}

// Step pops one node of the current round. When the round is exhausted, the
// step that follows raises the bound and visits the new root.
func (d *Deepening) Step() *Node {
	if d.status.Terminal() {
		return nil
	}
	if d.status == Ready {
		d.status = Running
		if d.kind == IDAStar {
			d.bound = d.problem.Heuristic(d.problem.Initial())
		}
		d.restart()
	}

	if len(d.stack) == 0 && !d.advance() {
		d.status = Failed
		return nil
	}

	node := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]

	if d.kind == IDAStar && node.F() > d.bound {
		node.Cutoff = true
		d.exceeded = true
		d.next = math.Min(d.next, node.F())
		return node
	}
	if d.problem.IsGoal(node.State) {
		d.status = Completed
		return node
	}

	actions := d.problem.Actions(node.State)
	if len(actions) == 0 {
		return node
	}
	if d.kind == IDS && float64(node.Depth) >= d.bound {
		node.Cutoff = true
		d.exceeded = true
		return node
	}
	if d.nodeLimit > 0 && d.expanded >= d.nodeLimit {
		d.status = Failed
		return node
	}

	d.expanded++
	var children []*Node
	for _, action := range actions {
		if node.onPath(d.problem.Result(node.State, action).Key()) {
			continue
		}
		child := newChild(d.problem, node, action, d.ids)
		node.addChild(child)
		children = append(children, child)
	}
	// Push in reverse so the first action is explored first
	for i := len(children) - 1; i >= 0; i-- {
		d.stack = append(d.stack, children[i])
	}
	return node
}

// advance raises the bound after an exhausted round. It reports false when
// no node was cut off, meaning a larger bound cannot reach anything new.
func (d *Deepening) advance() bool {
	if !d.exceeded {
		return false
	}
	switch d.kind {
	case IDS:
		d.bound++
		if d.maxDepth > 0 && d.bound > float64(d.maxDepth) {
			return false
		}
	case IDAStar:
		d.bound = d.next
	}
	d.restarts++
	d.restart()
	return true
}

func (d *Deepening) restart() {
	d.root = newRoot(d.problem, d.ids)
	d.stack = []*Node{d.root}
	d.exceeded = false
	d.next = math.Inf(1)
}
