package problem

import (
	"errors"
	"fmt"
	"strings"
)

// Blank moves
const (
	Up Action = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

// Heuristic selects the puzzle's remaining-cost estimate
type Heuristic string

const (
	Manhattan Heuristic = "manhattan"
	Misplaced Heuristic = "misplaced"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// DefaultGoal is the conventional target with the blank in the last cell
var DefaultGoal = [BoardLen]int{1, 2, 3, 4, 5, 6, 7, 8, 0}

type PuzzleState struct {
	tiles [BoardLen]int
	blank int
}

func newPuzzleState(tiles [BoardLen]int) PuzzleState {
	s := PuzzleState{tiles: tiles}
	for i, t := range tiles {
		if t == 0 {
			s.blank = i
			break
		}
	}
	return s
}

func (s PuzzleState) Key() string {
	var b strings.Builder
	for _, t := range s.tiles {
		b.WriteByte(byte('0' + t))
	}
	return b.String()
}

func (s PuzzleState) Board() BoardState {
	return PuzzleBoard(s.tiles[:]...)
}

func (s PuzzleState) Tiles() [BoardLen]int {
	return s.tiles
}

func (s PuzzleState) Blank() int {
	return s.blank
}

func (s PuzzleState) String() string {
	var b strings.Builder
	for i, t := range s.tiles {
		if i > 0 && i%Side == 0 {
			b.WriteByte('|')
		}
		if t == 0 {
			b.WriteByte('_')
		} else {
			b.WriteByte(byte('0' + t))
		}
	}
	return b.String()
}

// Puzzle is the sliding-tile puzzle on a 3x3 board
type Puzzle struct {
	initial   PuzzleState
	goal      PuzzleState
	goalIndex [BoardLen]int // goal position by tile
	heuristic Heuristic
}

func NewPuzzle(initial, goal BoardState, heuristic Heuristic) (*Puzzle, error) {
	start, err := ParsePuzzleBoard(initial)
	if err != nil {
		return nil, fmt.Errorf("invalid initial state: %w", err)
	}
	target := DefaultGoal
	if len(goal) > 0 {
		target, err = ParsePuzzleBoard(goal)
		if err != nil {
			return nil, fmt.Errorf("invalid goal state: %w", err)
		}
	}
	switch heuristic {
	case "":
		heuristic = Manhattan
	case Manhattan, Misplaced:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, heuristic)
	}
	if inversions(start)%2 != inversions(target)%2 {
		return nil, fmt.Errorf("%w: %v cannot reach %v", ErrUnsolvable, start, target)
	}

	p := &Puzzle{
		initial:   newPuzzleState(start),
		goal:      newPuzzleState(target),
		heuristic: heuristic,
	}
	for i, t := range target {
		p.goalIndex[t] = i
	}
	return p, nil
}

// inversions counts tile pairs out of order, ignoring the blank. On an odd
// width board a move never changes its parity.
func inversions(tiles [BoardLen]int) int {
	count := 0
	for i := 0; i < BoardLen; i++ {
		for j := i + 1; j < BoardLen; j++ {
			if tiles[i] != 0 && tiles[j] != 0 && tiles[i] > tiles[j] {
				count++
			}
		}
	}
	return count
}

func (p *Puzzle) Initial() State {
	return p.initial
}

func (p *Puzzle) Goal() PuzzleState {
	return p.goal
}

func (p *Puzzle) Actions(s State) []Action {
	blank := s.(PuzzleState).blank
	row, col := blank/Side, blank%Side

	actions := make([]Action, 0, 4)
	if row > 0 {
		actions = append(actions, Up)
	}
	if row < Side-1 {
		actions = append(actions, Down)
	}
	if col > 0 {
		actions = append(actions, Left)
	}
	if col < Side-1 {
		actions = append(actions, Right)
	}
	return actions
}

func (p *Puzzle) Result(s State, a Action) State {
	ps := s.(PuzzleState)
	target := ps.blank
	switch a {
	case Up:
		target -= Side
	case Down:
		target += Side
	case Left:
		target--
	case Right:
		target++
	default:
		panic(fmt.Sprintf("unexpected puzzle action %d", a))
	}

	next := ps
	next.tiles[ps.blank], next.tiles[target] = next.tiles[target], next.tiles[ps.blank]
	next.blank = target
	return next
}

func (p *Puzzle) StepCost(State, Action) float64 {
	return 1
}

func (p *Puzzle) IsGoal(s State) bool {
	return s.(PuzzleState).tiles == p.goal.tiles
}

func (p *Puzzle) Heuristic(s State) float64 {
	tiles := s.(PuzzleState).tiles
	total := 0
	for i, t := range tiles {
		if t == 0 {
			continue
		}
		goal := p.goalIndex[t]
		switch p.heuristic {
		case Misplaced:
			if goal != i {
				total++
			}
		default:
			total += abs(i/Side-goal/Side) + abs(i%Side-goal%Side)
		}
	}
	return float64(total)
}

func (p *Puzzle) Label(s State) string {
	return s.(PuzzleState).String()
}

// DirectionName names a blank move for display
func DirectionName(a Action) string {
	if a < 0 || int(a) >= len(directionNames) {
		return "?"
	}
	return directionNames[a]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
