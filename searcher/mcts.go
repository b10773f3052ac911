package searcher

import (
	"stepsearch/problem"

	"golang.org/x/exp/rand"
)

type Option func(m *TreeSearch)

// TreeSearch is Monte Carlo tree search over one persistent tree. Each step
// runs a full selection, expansion, rollout and backup iteration.
type TreeSearch struct {
	problem      problem.Problem
	adversary    problem.Adversarial // nil for single-agent problems
	iterations   int
	exploration  float64
	rolloutDepth int
	seed         uint64
	rng          *rand.Rand
	ids          identity
	root         *Node
	status       Status
	done         int
}

func WithIterations(iterations int) Option {
	return func(m *TreeSearch) {
		if iterations >= 0 {
			m.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *TreeSearch) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRolloutDepth(depth int) Option {
	return func(m *TreeSearch) {
		if depth > 0 {
			m.rolloutDepth = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *TreeSearch) {
		m.seed = seed
	}
}

func NewTreeSearch(p problem.Problem, options ...Option) *TreeSearch {
	m := &TreeSearch{ // Default values
		problem:      p,
		iterations:   DefaultIterations,
		exploration:  DefaultExploration,
		rolloutDepth: DefaultRolloutDepth,
		seed:         DefaultSeed,
		ids:          instanceKeyed(p),
	}
	if adversary, ok := p.(problem.Adversarial); ok {
		m.adversary = adversary
	}
	for _, option := range options {
		option(m)
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	return m
}

func (m *TreeSearch) Kind() Kind {
	return MCTS
}

func (m *TreeSearch) Status() Status {
	return m.status
}

func (m *TreeSearch) Tree() *Node {
	return m.root
}

func (m *TreeSearch) Attributes() Attributes {
	attrs := Attributes{
		"iterations": float64(m.done),
		"budget":     float64(m.iterations),
	}
	if m.root != nil {
		attrs["treeSize"] = float64(m.root.Size())
		attrs["rootVisits"] = float64(m.root.Visits)
	}
	return attrs
}

// Step runs one iteration and returns the node the rollout started from
func (m *TreeSearch) Step() *Node {
	if m.status.Terminal() {
		return nil
	}
	if m.status == Ready {
		m.status = Running
		m.root = newRoot(m.problem, m.ids)
		m.root.perspective = m.rootPerspective()
		m.root.untried = m.actions(m.root.State)
	}
	if m.done >= m.iterations {
		m.status = Completed
		return nil
	}

	node := selectThenExpand(m, m.root)
	outcome := m.rollout(node.State)
	backup(node, outcome)

	m.done++
	if m.done >= m.iterations {
		m.status = Completed
	}
	return node
}

// selectThenExpand descends by UCT through fully expanded nodes, then adds
// one untried child. A node that was never simulated is rolled out as is.
func selectThenExpand(m *TreeSearch, root *Node) *Node {
	node := root
	for len(node.untried) == 0 && len(node.Children) > 0 && !m.terminal(node.State) {
		node = pickChild(node, m.exploration)
	}
	if node.Visits == 0 || len(node.untried) == 0 || m.terminal(node.State) {
		return node
	}
	return m.expand(node)
}

func (m *TreeSearch) expand(parent *Node) *Node {
	action := parent.untried[0]
	parent.untried = parent.untried[1:]

	child := newChild(m.problem, parent, action, m.ids)
	child.untried = m.actions(child.State)
	child.perspective = 1
	if m.adversary != nil && !m.adversary.IsMaximizing(parent.State) {
		child.perspective = -1
	}
	parent.addChild(child)
	return child
}

// rollout plays uniformly random moves till a terminal state or the depth
// limit, and scores the final state from the maximizing side's perspective.
func (m *TreeSearch) rollout(state problem.State) float64 {
	for depth := 0; depth < m.rolloutDepth && !m.terminal(state); depth++ {
		actions := m.problem.Actions(state)
		if len(actions) == 0 {
			break
		}
		state = m.problem.Result(state, actions[m.rng.Intn(len(actions))])
	}

	if m.adversary == nil {
		if m.problem.IsGoal(state) {
			return 1
		}
		return 0
	}
	if m.adversary.IsTerminal(state) {
		return m.adversary.Utility(state)
	}
	// Cut off before the game ended
	return m.adversary.Heuristic(state)
}

// backup credits every ancestor with the outcome seen from the side that
// moved into it.
func backup(node *Node, outcome float64) {
	for ; node != nil; node = node.Parent {
		node.Visits++
		node.ValueSum += node.perspective * outcome
	}
}

func (m *TreeSearch) terminal(state problem.State) bool {
	if m.adversary != nil {
		return m.adversary.IsTerminal(state)
	}
	return m.problem.IsGoal(state) || len(m.problem.Actions(state)) == 0
}

func (m *TreeSearch) actions(state problem.State) []problem.Action {
	if m.terminal(state) {
		return nil
	}
	return m.problem.Actions(state)
}

// rootPerspective scores the root for the side that moved into it, the
// opponent of the side to move.
func (m *TreeSearch) rootPerspective() float64 {
	if m.adversary == nil {
		return 1
	}
	if m.adversary.IsMaximizing(m.root.State) {
		return -1
	}
	return 1
}
