package problem

import "errors"

// Action indexes a move: a blank direction for the puzzle, a cell for the grid
// game, a child position for an authored tree.
type Action int

// State should be immutable - Result always returns a new State
type State interface {
	// Key is the canonical identity of the state, used to collapse duplicates
	Key() string
	Board() BoardState
}

// Problem defines a state space. Implementations are immutable after
// construction and may be shared read-only by several algorithms.
type Problem interface {
	Initial() State
	Actions(State) []Action
	Result(State, Action) State
	StepCost(State, Action) float64
	IsGoal(State) bool
	// Heuristic estimates the remaining cost to a goal, 0 when unsupported
	Heuristic(State) float64
	Label(State) string
}

// Adversarial is implemented by two-player problems. Utility is scored from
// the maximizing side's perspective.
type Adversarial interface {
	Problem
	IsTerminal(State) bool
	Utility(State) float64
	IsMaximizing(State) bool
}

// Authored is implemented by problems replaying an externally supplied tree,
// whose nodes carry their own identity.
type Authored interface {
	AuthoredID(State) string
}

var (
	ErrMalformedBoard = errors.New("malformed board state")
	ErrUnsolvable     = errors.New("goal is unreachable from initial state")
	ErrMalformedTree  = errors.New("malformed tree")
)

// Problem types known to the configuration layer
const (
	KindPuzzle = "puzzle"
	KindGrid   = "grid"
	KindTree   = "tree"
)
