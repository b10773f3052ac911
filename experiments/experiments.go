package experiments

import (
	"fmt"

	"stepsearch/config"
	"stepsearch/engine"
	"stepsearch/experiments/metrics"
	"stepsearch/searcher"

	"github.com/rs/zerolog/log"
)

// MaxSteps bounds a single run. Runs still going when it is reached are
// dropped from the report.
const MaxSteps = 1000000

// Report holds the records of one comparison
type Report struct {
	Settings []metrics.SettingsRecord
	Runs     []metrics.RunMetric
	Steps    []metrics.StepRecord
}

// Compare runs each algorithm on the problem of cfg to termination. Algorithms
// the factory cannot build for the problem are skipped with a warning.
func Compare(cfg config.Config, kinds []searcher.Kind) (Report, error) {
	report := Report{}

	log.Info().Msgf("comparing %d algorithms on %s...", len(kinds), cfg.Problem.Kind)

	for i, kind := range kinds {
		runCfg := cfg
		runCfg.Search.Algorithm = string(kind)

		session, err := engine.NewSession(runCfg, engine.WithCollector(metrics.NewCollector()))
		if err != nil {
			return report, fmt.Errorf("failed to start %s: %w", kind, err)
		}
		if session.Algorithm == nil {
			log.Warn().Msgf("skipping %s: not applicable to %s", kind, cfg.Problem.Kind)
			continue
		}

		log.Info().Msgf("starting run %d of %d with %s...", i+1, len(kinds), kind)
		steps := 0
		for steps < MaxSteps && !session.Status().Terminal() {
			steps += session.FastForward()
		}

		metric := session.Metric()
		if metric == nil {
			log.Warn().Msgf("dropping %s: still %s after %d steps", kind, session.Status(), steps)
			continue
		}

		report.Settings = append(report.Settings, metrics.SettingsRecord{
			RunID:    metric.RunID,
			Problem:  cfg.Problem.Kind,
			Settings: runCfg.Settings(),
		})
		report.Runs = append(report.Runs, *metric)
		for _, update := range session.History {
			report.Steps = append(report.Steps, metrics.StepRecord{
				RunID:  metric.RunID,
				Step:   update.Step,
				NodeID: update.NodeID,
				Name:   update.Name,
				Status: update.Status,
			})
		}

		log.Info().Msgf("completed %s with %s in %d steps", kind, metric.Status, metric.Steps)
	}

	return report, nil
}

// Run compares kinds and stores the report under root/name. It returns the
// directory the report was written to.
func Run(root, name string, cfg config.Config, kinds []searcher.Kind) (string, error) {
	report, err := Compare(cfg, kinds)
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteSettings(report.Settings)
	if err != nil {
		return "", fmt.Errorf("failed to store settings: %w", err)
	}
	log.Info().Msg("stored settings")

	err = writer.WriteRuns(report.Runs)
	if err != nil {
		return "", fmt.Errorf("failed to write runs: %w", err)
	}
	log.Info().Msg("stored runs")

	err = writer.WriteSteps(report.Steps)
	if err != nil {
		return "", fmt.Errorf("failed to write steps: %w", err)
	}
	log.Info().Msg("stored steps")

	return writer.Dir(), nil
}
