package engine

import (
	"context"
	"fmt"
	"time"

	"stepsearch/config"
	"stepsearch/experiments/metrics"
	"stepsearch/problem"
	"stepsearch/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session owns one problem and one algorithm instance and paces them. It is
// not safe for concurrent use; all progress happens inside Step.
type Session struct {
	ID        uuid.UUID
	Config    config.Config
	Problem   problem.Problem
	Algorithm searcher.Algorithm // nil when the factory could not build one
	History   []Update

	collector metrics.Collector
	steps     int
	last      *searcher.Node
	metric    *metrics.RunMetric
}

type SessionOption func(s *Session)

// WithCollector records a run metric when the search terminates
func WithCollector(c metrics.Collector) SessionOption {
	return func(s *Session) {
		s.collector = c
	}
}

// NewSession builds the configured problem and algorithm. A malformed problem
// fails fast; an algorithm the factory cannot build leaves Algorithm nil.
func NewSession(cfg config.Config, options ...SessionOption) (*Session, error) {
	s := &Session{collector: metrics.NewDummyCollector()}
	for _, option := range options {
		option(s)
	}
	if err := s.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure discards the current run and rebuilds problem and algorithm
// from cfg. On error the session is left unchanged.
func (s *Session) Reconfigure(cfg config.Config) error {
	p, err := cfg.Build()
	if err != nil {
		return err
	}

	s.ID = uuid.New()
	s.Config = cfg
	s.Problem = p
	s.Algorithm = searcher.New(p, cfg.Settings())
	s.History = nil
	s.steps = 0
	s.last = nil
	s.metric = nil

	if s.Algorithm == nil {
		log.Warn().Msgf("session %s has no algorithm for %q on %s", s.ID, cfg.Search.Algorithm, cfg.Problem.Kind)
		return nil
	}
	s.collector.Start(s.ID.String(), s.Algorithm.Kind())
	log.Debug().Msgf("session %s running %s on %s", s.ID, s.Algorithm.Kind(), cfg.Problem.Kind)
	return nil
}

// Status reports Ready for a session without an algorithm
func (s *Session) Status() searcher.Status {
	if s.Algorithm == nil {
		return searcher.Ready
	}
	return s.Algorithm.Status()
}

func (s *Session) Tree() *searcher.Node {
	if s.Algorithm == nil {
		return nil
	}
	return s.Algorithm.Tree()
}

// Step advances the algorithm once and returns the touched node, if any
func (s *Session) Step() *searcher.Node {
	if s.Algorithm == nil || s.Algorithm.Status().Terminal() {
		return nil
	}

	node := s.Algorithm.Step()
	s.steps++
	s.collector.AddStep(node != nil)
	status := s.Algorithm.Status()

	if node != nil {
		s.last = node
		s.History = append(s.History, Update{Step: s.steps, NodeID: node.ID, Name: node.Name, Status: status})
		log.Debug().Msgf("step %d touched %s (%s)", s.steps, node.ID, status)
	}
	if status.Terminal() {
		metric := s.collector.Complete(s.Algorithm, s.Goal())
		s.metric = &metric
		log.Info().Msgf("%s finished with %s after %d steps", s.Algorithm.Kind(), status, s.steps)
	}
	return node
}

// FastForward steps until the search terminates or the ceiling for its kind
// is reached, and returns the number of steps taken.
func (s *Session) FastForward() int {
	if s.Algorithm == nil {
		return 0
	}
	ceiling := Ceiling(s.Algorithm.Kind())
	taken := 0
	for taken < ceiling && !s.Algorithm.Status().Terminal() {
		s.Step()
		taken++
	}
	if taken == ceiling && !s.Algorithm.Status().Terminal() {
		log.Debug().Msgf("fast-forward stopped at the %d step ceiling", ceiling)
	}
	return taken
}

// Play steps once per interval until the search terminates, fn returns
// false, or ctx is done. It runs on the caller's goroutine.
func (s *Session) Play(ctx context.Context, interval time.Duration, fn func(*searcher.Node) bool) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	if s.Algorithm == nil {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !s.Algorithm.Status().Terminal() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !fn(s.Step()) {
				return nil
			}
		}
	}
	return nil
}

// Goal returns the goal node of a completed run. Game search and MCTS
// complete without one.
func (s *Session) Goal() *searcher.Node {
	if s.Algorithm == nil || s.Algorithm.Status() != searcher.Completed || s.last == nil {
		return nil
	}
	if !s.Problem.IsGoal(s.last.State) {
		return nil
	}
	switch s.Algorithm.Kind() {
	case searcher.Minimax, searcher.AlphaBeta, searcher.MCTS:
		return nil
	}
	return s.last
}

// Metric is the run summary, nil until the search terminates
func (s *Session) Metric() *metrics.RunMetric {
	return s.metric
}

// Export converts the current tree to the interchange format
func (s *Session) Export() *problem.TreeNode {
	return searcher.Export(s.Problem, s.Tree())
}
