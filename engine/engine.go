package engine

import (
	"errors"

	"stepsearch/searcher"
)

var ErrInvalidInterval = errors.New("play interval must be positive")

// Fast-forward ceilings bound the latency of a single burst. Iteration-heavy
// algorithms do more work per step and get the smallest ceiling.
const (
	FrontierCeiling  = 5000
	IterativeCeiling = 1000
	GameCeiling      = 20000
)

// Ceiling returns the fast-forward step limit for an algorithm kind
func Ceiling(kind searcher.Kind) int {
	switch {
	case kind.Iterative():
		return IterativeCeiling
	case kind == searcher.Minimax || kind == searcher.AlphaBeta:
		return GameCeiling
	}
	return FrontierCeiling
}

// Update records one step of a session
type Update struct {
	Step   int
	NodeID string
	Name   string
	Status searcher.Status
}
