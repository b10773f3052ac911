package problem

import (
	"fmt"
	"strings"
)

// Mark occupies a grid cell
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func ParseMark(s string) (Mark, error) {
	switch s {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	}
	return Empty, fmt.Errorf("unknown mark %q", s)
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return ""
}

func (m Mark) opponent() Mark {
	if m == X {
		return O
	}
	return X
}

// horizontal, vertical and diagonal lines
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type GridState struct {
	cells  [BoardLen]Mark
	toMove Mark
}

func (s GridState) Key() string {
	var b strings.Builder
	for _, m := range s.cells {
		if m == Empty {
			b.WriteByte('_')
		} else {
			b.WriteString(m.String())
		}
	}
	b.WriteByte(':')
	b.WriteString(s.toMove.String())
	return b.String()
}

func (s GridState) Board() BoardState {
	board := make(BoardState, BoardLen)
	for i, m := range s.cells {
		board[i] = m.String()
	}
	return board
}

func (s GridState) ToMove() Mark {
	return s.toMove
}

func (s GridState) String() string {
	var b strings.Builder
	for i, m := range s.cells {
		if i > 0 && i%Side == 0 {
			b.WriteByte('|')
		}
		if m == Empty {
			b.WriteByte('_')
		} else {
			b.WriteString(m.String())
		}
	}
	return b.String()
}

// Winner returns the mark owning a complete line, or Empty
func (s GridState) Winner() Mark {
	for _, line := range winLines {
		m := s.cells[line[0]]
		if m != Empty && m == s.cells[line[1]] && m == s.cells[line[2]] {
			return m
		}
	}
	return Empty
}

func (s GridState) full() bool {
	for _, m := range s.cells {
		if m == Empty {
			return false
		}
	}
	return true
}

// Grid is the two-player 3x3 line game. X always moves first; the maximizing
// symbol is chosen by the caller.
type Grid struct {
	initial   GridState
	maximizer Mark
}

func NewGrid(initial BoardState, maximizer string) (*Grid, error) {
	var cells [BoardLen]Mark
	if len(initial) > 0 {
		var err error
		cells, err = ParseGridBoard(initial)
		if err != nil {
			return nil, fmt.Errorf("invalid initial state: %w", err)
		}
	}
	side, err := ParseMark(maximizer)
	if err != nil || side == Empty {
		return nil, fmt.Errorf("%w: maximizing side must be X or O, got %q", ErrMalformedBoard, maximizer)
	}

	xCount, oCount := 0, 0
	for _, m := range cells {
		switch m {
		case X:
			xCount++
		case O:
			oCount++
		}
	}
	state := GridState{cells: cells}
	switch xCount - oCount {
	case 0:
		state.toMove = X
	case 1:
		state.toMove = O
	default:
		return nil, fmt.Errorf("%w: %d X marks against %d O marks", ErrMalformedBoard, xCount, oCount)
	}
	if winnersDiffer(cells) {
		return nil, fmt.Errorf("%w: both sides own a line", ErrMalformedBoard)
	}

	return &Grid{initial: state, maximizer: side}, nil
}

func winnersDiffer(cells [BoardLen]Mark) bool {
	var seen Mark
	for _, line := range winLines {
		m := cells[line[0]]
		if m == Empty || m != cells[line[1]] || m != cells[line[2]] {
			continue
		}
		if seen != Empty && seen != m {
			return true
		}
		seen = m
	}
	return false
}

func (g *Grid) Initial() State {
	return g.initial
}

func (g *Grid) Maximizer() Mark {
	return g.maximizer
}

func (g *Grid) Actions(s State) []Action {
	gs := s.(GridState)
	if g.IsTerminal(gs) {
		return nil
	}
	actions := make([]Action, 0, BoardLen)
	for i, m := range gs.cells {
		if m == Empty {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (g *Grid) Result(s State, a Action) State {
	gs := s.(GridState)
	if a < 0 || int(a) >= BoardLen || gs.cells[a] != Empty {
		panic(fmt.Sprintf("illegal grid action %d on %s", a, gs))
	}
	next := gs
	next.cells[a] = gs.toMove
	next.toMove = gs.toMove.opponent()
	return next
}

func (g *Grid) StepCost(State, Action) float64 {
	return 1
}

func (g *Grid) IsGoal(s State) bool {
	return g.IsTerminal(s)
}

func (g *Grid) IsTerminal(s State) bool {
	gs := s.(GridState)
	return gs.Winner() != Empty || gs.full()
}

func (g *Grid) Utility(s State) float64 {
	switch s.(GridState).Winner() {
	case g.maximizer:
		return 1
	case Empty:
		return 0
	}
	return -1
}

func (g *Grid) IsMaximizing(s State) bool {
	return s.(GridState).toMove == g.maximizer
}

// Heuristic scores a non-terminal position by the lines still open to each
// side, normalized into (-1, 1) from the maximizing side's perspective.
func (g *Grid) Heuristic(s State) float64 {
	gs := s.(GridState)
	if g.IsTerminal(gs) {
		return g.Utility(gs)
	}
	open := 0
	for _, line := range winLines {
		var hasMax, hasMin bool
		for _, i := range line {
			switch gs.cells[i] {
			case g.maximizer:
				hasMax = true
			case g.maximizer.opponent():
				hasMin = true
			}
		}
		if !hasMin {
			open++
		}
		if !hasMax {
			open--
		}
	}
	return float64(open) / float64(len(winLines)+1)
}

func (g *Grid) Label(s State) string {
	return s.(GridState).String()
}
