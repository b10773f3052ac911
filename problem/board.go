package problem

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

const (
	Side     = 3
	BoardLen = Side * Side
)

// BoardState is the interchange encoding of a state: tile numbers for the
// puzzle, "X"/"O"/"" marks for the grid game.
type BoardState []any

// Recognizer turns a photographed board into a BoardState. It is treated as an
// opaque producer; its output is validated like any other board.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (BoardState, error)
}

// RecognizeBoard asks r for a board and validates it for the given problem
// type ("puzzle" or "grid").
func RecognizeBoard(ctx context.Context, r Recognizer, image []byte, kind string) (BoardState, error) {
	board, err := r.Recognize(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize board: %w", err)
	}
	switch kind {
	case KindPuzzle:
		if _, err := ParsePuzzleBoard(board); err != nil {
			return nil, err
		}
	case KindGrid:
		if _, err := ParseGridBoard(board); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: no board format for problem %q", ErrMalformedBoard, kind)
	}
	return board, nil
}

// ParsePuzzleBoard validates a 9-length permutation of 0..8 (0 = blank).
func ParsePuzzleBoard(board BoardState) ([BoardLen]int, error) {
	var tiles [BoardLen]int
	if len(board) != BoardLen {
		return tiles, fmt.Errorf("%w: puzzle board has %d cells, want %d", ErrMalformedBoard, len(board), BoardLen)
	}

	seen := [BoardLen]bool{}
	for i, cell := range board {
		v, ok := toInt(cell)
		if !ok {
			return tiles, fmt.Errorf("%w: cell %d is not an integer: %v", ErrMalformedBoard, i, cell)
		}
		if v < 0 || v >= BoardLen {
			return tiles, fmt.Errorf("%w: cell %d out of range: %d", ErrMalformedBoard, i, v)
		}
		if seen[v] {
			return tiles, fmt.Errorf("%w: tile %d repeated", ErrMalformedBoard, v)
		}
		seen[v] = true
		tiles[i] = v
	}
	return tiles, nil
}

// ParseGridBoard validates a 9-length array of "X", "O" or empty cells.
func ParseGridBoard(board BoardState) ([BoardLen]Mark, error) {
	var marks [BoardLen]Mark
	if len(board) != BoardLen {
		return marks, fmt.Errorf("%w: grid board has %d cells, want %d", ErrMalformedBoard, len(board), BoardLen)
	}

	for i, cell := range board {
		if cell == nil {
			continue
		}
		s, ok := cell.(string)
		if !ok {
			return marks, fmt.Errorf("%w: cell %d is not a mark: %v", ErrMalformedBoard, i, cell)
		}
		m, err := ParseMark(s)
		if err != nil {
			return marks, fmt.Errorf("%w: cell %d: %v", ErrMalformedBoard, i, err)
		}
		marks[i] = m
	}
	return marks, nil
}

// PuzzleBoard encodes tiles as a BoardState
func PuzzleBoard(tiles ...int) BoardState {
	board := make(BoardState, len(tiles))
	for i, t := range tiles {
		board[i] = t
	}
	return board
}

// GridBoard encodes marks as a BoardState
func GridBoard(marks ...string) BoardState {
	board := make(BoardState, len(marks))
	for i, m := range marks {
		board[i] = m
	}
	return board
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}
