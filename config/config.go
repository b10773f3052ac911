package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"stepsearch/problem"
	"stepsearch/searcher"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Environment variables override file values
const (
	EnvAlgorithm    = "STEPSEARCH_ALGORITHM"
	EnvProblem      = "STEPSEARCH_PROBLEM"
	EnvHeuristic    = "STEPSEARCH_HEURISTIC"
	EnvMaximizer    = "STEPSEARCH_MAXIMIZER"
	EnvTreeFile     = "STEPSEARCH_TREE_FILE"
	EnvMaxDepth     = "STEPSEARCH_MAX_DEPTH"
	EnvIterations   = "STEPSEARCH_ITERATIONS"
	EnvExploration  = "STEPSEARCH_EXPLORATION"
	EnvPruning      = "STEPSEARCH_PRUNING"
	EnvNodeLimit    = "STEPSEARCH_NODE_LIMIT"
	EnvRolloutDepth = "STEPSEARCH_ROLLOUT_DEPTH"
	EnvSeed         = "STEPSEARCH_SEED"
	EnvLogLevel     = "STEPSEARCH_LOG_LEVEL"
)

var validate = validator.New()

// DefaultPuzzle is solved in five moves
var DefaultPuzzle = problem.PuzzleBoard(1, 2, 3, 4, 8, 0, 7, 6, 5)

// Config selects a problem and an algorithm and tunes the search
type Config struct {
	Problem  ProblemConfig `yaml:"problem"`
	Search   SearchConfig  `yaml:"search"`
	LogLevel string        `yaml:"log_level" validate:"oneof=trace debug info warn error"`
}

type ProblemConfig struct {
	Kind      string             `yaml:"kind" validate:"oneof=puzzle grid tree"`
	Initial   problem.BoardState `yaml:"initial"`
	Goal      problem.BoardState `yaml:"goal"`
	Heuristic string             `yaml:"heuristic" validate:"omitempty,oneof=manhattan misplaced"`
	Maximizer string             `yaml:"maximizer" validate:"omitempty,oneof=X O"`
	TreeFile  string             `yaml:"tree_file" validate:"required_if=Kind tree"`
}

// SearchConfig leaves the algorithm name unchecked: the factory decides what
// it can build and warns about the rest.
type SearchConfig struct {
	Algorithm    string  `yaml:"algorithm" validate:"required"`
	MaxDepth     int     `yaml:"max_depth" validate:"gte=0"`
	Iterations   int     `yaml:"iterations" validate:"gte=0"`
	Exploration  float64 `yaml:"exploration" validate:"gte=0"`
	Pruning      bool    `yaml:"pruning"`
	NodeLimit    int     `yaml:"node_limit" validate:"gte=0"`
	RolloutDepth int     `yaml:"rollout_depth" validate:"gte=1"`
	Seed         uint64  `yaml:"seed"`
}

func Default() Config {
	return Config{
		Problem: ProblemConfig{
			Kind:      problem.KindPuzzle,
			Heuristic: string(problem.Manhattan),
			Maximizer: "X",
		},
		Search: SearchConfig{
			Algorithm:    string(searcher.AStar),
			MaxDepth:     9,
			Iterations:   searcher.DefaultIterations,
			Exploration:  searcher.DefaultExploration,
			NodeLimit:    100000,
			RolloutDepth: searcher.DefaultRolloutDepth,
			Seed:         searcher.DefaultSeed,
		},
		LogLevel: "info",
	}
}

// Load merges defaults, the YAML file at path (when not empty) and the
// environment, in increasing priority, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	texts := map[string]*string{
		EnvAlgorithm: &cfg.Search.Algorithm,
		EnvProblem:   &cfg.Problem.Kind,
		EnvHeuristic: &cfg.Problem.Heuristic,
		EnvMaximizer: &cfg.Problem.Maximizer,
		EnvTreeFile:  &cfg.Problem.TreeFile,
		EnvLogLevel:  &cfg.LogLevel,
	}
	for key, field := range texts {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		EnvMaxDepth:     &cfg.Search.MaxDepth,
		EnvIterations:   &cfg.Search.Iterations,
		EnvNodeLimit:    &cfg.Search.NodeLimit,
		EnvRolloutDepth: &cfg.Search.RolloutDepth,
	}
	for key, field := range ints {
		if v, ok := os.LookupEnv(key); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
			}
			*field = i
		}
	}

	if v, ok := os.LookupEnv(EnvExploration); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvExploration, v)
		}
		cfg.Search.Exploration = f
	}
	if v, ok := os.LookupEnv(EnvPruning); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, EnvPruning, v)
		}
		cfg.Search.Pruning = b
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a seed", ErrInvalid, EnvSeed, v)
		}
		cfg.Search.Seed = s
	}
	return nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Settings converts the search section for the algorithm factory
func (c Config) Settings() searcher.Settings {
	return searcher.Settings{
		Algorithm:    searcher.Kind(c.Search.Algorithm),
		MaxDepth:     c.Search.MaxDepth,
		Iterations:   c.Search.Iterations,
		Exploration:  c.Search.Exploration,
		Pruning:      c.Search.Pruning,
		NodeLimit:    c.Search.NodeLimit,
		RolloutDepth: c.Search.RolloutDepth,
		Seed:         c.Search.Seed,
	}
}

// Level parses the configured log level, falling back to info
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Build constructs the configured problem, failing fast on malformed boards.
// An empty grid board starts a fresh game.
func (c Config) Build() (problem.Problem, error) {
	switch c.Problem.Kind {
	case problem.KindPuzzle:
		initial := c.Problem.Initial
		if len(initial) == 0 {
			initial = DefaultPuzzle
		}
		p, err := problem.NewPuzzle(initial, c.Problem.Goal, problem.Heuristic(c.Problem.Heuristic))
		if err != nil {
			return nil, err
		}
		return p, nil
	case problem.KindGrid:
		maximizer := c.Problem.Maximizer
		if maximizer == "" {
			maximizer = "X"
		}
		g, err := problem.NewGrid(c.Problem.Initial, maximizer)
		if err != nil {
			return nil, err
		}
		return g, nil
	case problem.KindTree:
		root, err := problem.LoadTree(c.Problem.TreeFile)
		if err != nil {
			return nil, err
		}
		t, err := problem.NewCustomTree(root)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown problem kind %q", ErrInvalid, c.Problem.Kind)
}
