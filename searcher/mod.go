package searcher

// Status of a steppable search. Completed and Failed are terminal: further
// calls to Step are no-ops.
type Status int

const (
	Ready Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Completed:
		return "COMPLETED"
	case Failed:
		return "FAILED"
	}
	return "UNKNOWN"
}

func (s Status) Terminal() bool {
	return s == Completed || s == Failed
}

// Kind names an algorithm variant
type Kind string

const (
	BFS       Kind = "bfs"
	DFS       Kind = "dfs"
	UCS       Kind = "ucs"
	Greedy    Kind = "greedy"
	AStar     Kind = "astar"
	Minimax   Kind = "minimax"
	AlphaBeta Kind = "alphabeta"
	MCTS      Kind = "mcts"
	IDS       Kind = "ids"
	IDAStar   Kind = "idastar"
)

// Kinds lists every algorithm the factory knows
var Kinds = []Kind{BFS, DFS, UCS, Greedy, AStar, Minimax, AlphaBeta, MCTS, IDS, IDAStar}

// Iterative reports whether one step is a whole iteration or restart-prone
// walk, which bounds how many steps a fast-forward burst may take.
func (k Kind) Iterative() bool {
	return k == MCTS || k == IDS || k == IDAStar
}

// Attributes maps a statistic name to its current value
type Attributes map[string]float64

// Algorithm is the control surface shared by every search variant. All
// progress happens synchronously inside Step.
type Algorithm interface {
	// Step advances the search by one unit of work and returns the node it
	// touched, or nil when nothing was touched.
	Step() *Node
	Status() Status
	// Tree returns the root of the current search tree, nil before the first step.
	Tree() *Node
	Attributes() Attributes
	Kind() Kind
}

// Hyperparameters

const (
	DefaultExploration  = 1.41 // ~sqrt(2)
	DefaultIterations   = 100
	DefaultRolloutDepth = 50
	DefaultSeed         = 1
)
