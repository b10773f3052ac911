package problem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// TreeNode is the interchange format for search trees. Presentation-only
// fields (visited, current) are added by the renderer and never stored here.
type TreeNode struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Value        float64     `json:"value"`
	CostToParent float64     `json:"costToParent"`
	IsGoal       bool        `json:"isGoal"`
	BoardState   BoardState  `json:"boardState,omitempty"`
	Children     []*TreeNode `json:"children"`

	// Adversarial search annotations
	Alpha              *float64 `json:"alpha,omitempty"`
	Beta               *float64 `json:"beta,omitempty"`
	IsPruned           bool     `json:"isPruned,omitempty"`
	PruningTriggeredBy string   `json:"pruningTriggeredBy,omitempty"`
	IsCutoffPoint      bool     `json:"isCutoffPoint,omitempty"`
}

func DecodeTree(r io.Reader) (*TreeNode, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var root TreeNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	return &root, nil
}

func EncodeTree(w io.Writer, root *TreeNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return nil
}

func LoadTree(path string) (*TreeNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree file: %w", err)
	}
	defer f.Close()
	return DecodeTree(f)
}

// TreeState points at one authored node
type TreeState struct {
	node  *TreeNode
	depth int
}

func (s TreeState) Key() string {
	return s.node.ID
}

func (s TreeState) Board() BoardState {
	return s.node.BoardState
}

func (s TreeState) Node() *TreeNode {
	return s.node
}

// CustomTree replays an authored, possibly asymmetric tree. Costs, values and
// goal flags are read from the authored nodes, and the authored id is the
// only identity: no state hashing is attempted.
type CustomTree struct {
	root *TreeNode
}

func NewCustomTree(root *TreeNode) (*CustomTree, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrMalformedTree)
	}
	seen := make(map[string]bool)
	if err := validateTree(root, seen); err != nil {
		return nil, err
	}
	return &CustomTree{root: root}, nil
}

func validateTree(n *TreeNode, seen map[string]bool) error {
	if n == nil {
		return fmt.Errorf("%w: null node", ErrMalformedTree)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: node %q has no id", ErrMalformedTree, n.Name)
	}
	if seen[n.ID] {
		return fmt.Errorf("%w: duplicate id %q", ErrMalformedTree, n.ID)
	}
	seen[n.ID] = true
	if len(n.BoardState) > 0 {
		if err := validateBoard(n.BoardState); err != nil {
			return fmt.Errorf("%w: node %q: %w", ErrMalformedTree, n.ID, err)
		}
	}
	for _, child := range n.Children {
		if err := validateTree(child, seen); err != nil {
			return err
		}
	}
	return nil
}

// validateBoard accepts either a puzzle or a grid board
func validateBoard(board BoardState) error {
	if _, err := ParsePuzzleBoard(board); err == nil {
		return nil
	}
	_, err := ParseGridBoard(board)
	return err
}

func (t *CustomTree) Root() *TreeNode {
	return t.root
}

func (t *CustomTree) Initial() State {
	return TreeState{node: t.root}
}

func (t *CustomTree) Actions(s State) []Action {
	children := s.(TreeState).node.Children
	actions := make([]Action, len(children))
	for i := range children {
		actions[i] = Action(i)
	}
	return actions
}

func (t *CustomTree) Result(s State, a Action) State {
	ts := s.(TreeState)
	return TreeState{node: ts.node.Children[a], depth: ts.depth + 1}
}

func (t *CustomTree) StepCost(s State, a Action) float64 {
	return s.(TreeState).node.Children[a].CostToParent
}

func (t *CustomTree) IsGoal(s State) bool {
	return s.(TreeState).node.IsGoal
}

func (t *CustomTree) Heuristic(s State) float64 {
	return s.(TreeState).node.Value
}

func (t *CustomTree) Label(s State) string {
	n := s.(TreeState).node
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

func (t *CustomTree) IsTerminal(s State) bool {
	return len(s.(TreeState).node.Children) == 0
}

func (t *CustomTree) Utility(s State) float64 {
	return s.(TreeState).node.Value
}

// IsMaximizing alternates by depth, starting with the root
func (t *CustomTree) IsMaximizing(s State) bool {
	return s.(TreeState).depth%2 == 0
}

func (t *CustomTree) AuthoredID(s State) string {
	return s.(TreeState).node.ID
}
