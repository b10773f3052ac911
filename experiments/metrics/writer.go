package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"stepsearch/searcher"
)

// SettingsRecord is the configuration one run was built from
type SettingsRecord struct {
	RunID   string
	Problem string
	searcher.Settings
}

// StepRecord is one touched node of a run
type StepRecord struct {
	RunID  string
	Step   int
	NodeID string
	Name   string
	Status searcher.Status
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for one experiment under root
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSettings(records []SettingsRecord) error {
	header := []string{"run_id", "problem", "algorithm", "max_depth", "iterations", "exploration", "pruning", "node_limit", "rollout_depth", "seed"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.RunID,
			record.Problem,
			string(record.Algorithm),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.Iterations),
			strconv.FormatFloat(record.Exploration, 'g', -1, 64),
			strconv.FormatBool(record.Pruning),
			strconv.Itoa(record.NodeLimit),
			strconv.Itoa(record.RolloutDepth),
			strconv.FormatUint(record.Seed, 10),
		})
	}
	return w.write("settings.csv", header, rows)
}

func (w *Writer) WriteRuns(runs []RunMetric) error {
	header := []string{"run_id", "algorithm", "status", "steps", "touched", "tree_size", "goal_depth", "goal_cost", "start_time", "end_time", "duration", "attributes"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.RunID,
			string(run.Algorithm),
			run.Status.String(),
			strconv.Itoa(run.Steps),
			strconv.Itoa(run.Touched),
			strconv.Itoa(run.TreeSize),
			strconv.Itoa(run.GoalDepth),
			strconv.FormatFloat(run.GoalCost, 'g', -1, 64),
			run.StartTime.Format(time.RFC3339),
			run.EndTime.Format(time.RFC3339),
			run.Duration.String(),
			formatAttributes(run.Attributes),
		})
	}
	return w.write("runs.csv", header, rows)
}

func (w *Writer) WriteSteps(records []StepRecord) error {
	header := []string{"run_id", "step", "node_id", "name", "status"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.RunID,
			strconv.Itoa(record.Step),
			record.NodeID,
			record.Name,
			record.Status.String(),
		})
	}
	return w.write("steps.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// formatAttributes renders attributes as sorted key=value pairs
func formatAttributes(attrs searcher.Attributes) string {
	pairs := make([]string, 0, len(attrs))
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		pairs = append(pairs, key+"="+strconv.FormatFloat(attrs[key], 'g', -1, 64))
	}
	return strings.Join(pairs, ";")
}
