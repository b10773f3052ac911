package searcher

import (
	"stepsearch/problem"

	"github.com/rs/zerolog/log"
)

// Settings selects and tunes an algorithm
type Settings struct {
	Algorithm    Kind
	MaxDepth     int
	Iterations   int
	Exploration  float64
	Pruning      bool
	NodeLimit    int
	RolloutDepth int
	Seed         uint64
}

// New builds the algorithm named by settings. An unrecognized name, or a game
// search over a problem without utilities, yields nil and a warning: callers
// must check for a missing instance.
func New(p problem.Problem, s Settings) Algorithm {
	switch s.Algorithm {
	case BFS, DFS, UCS, Greedy, AStar:
		return NewGraphSearch(p, s.Algorithm)
	case Minimax, AlphaBeta:
		adversary, ok := p.(problem.Adversarial)
		if !ok {
			log.Warn().Msgf("algorithm %q needs a two-player problem", s.Algorithm)
			return nil
		}
		return NewGameSearch(adversary, s.MaxDepth, s.Pruning || s.Algorithm == AlphaBeta)
	case MCTS:
		return NewTreeSearch(p,
			WithIterations(s.Iterations),
			WithExploration(s.Exploration),
			WithRolloutDepth(s.RolloutDepth),
			WithSeed(s.Seed),
		)
	case IDS:
		return NewIDS(p, s.MaxDepth, s.NodeLimit)
	case IDAStar:
		return NewIDAStar(p, s.NodeLimit)
	}
	log.Warn().Msgf("unrecognized algorithm %q", s.Algorithm)
	return nil
}
