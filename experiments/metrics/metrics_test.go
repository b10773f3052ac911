package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stepsearch/problem"
	"stepsearch/searcher"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("summarizing a finished run", func(t *testing.T) {
		p, err := problem.NewPuzzle(problem.PuzzleBoard(1, 2, 3, 4, 5, 6, 7, 0, 8), nil, problem.Manhattan)
		require.NoError(t, err)
		alg := searcher.NewGraphSearch(p, searcher.BFS)
		c := NewCollector()
		c.Start("run-1", alg.Kind())

		var last *searcher.Node
		for !alg.Status().Terminal() {
			n := alg.Step()
			c.AddStep(n != nil)
			last = n
		}
		metric := c.Complete(alg, last)

		require.Equal(t, "run-1", metric.RunID)
		require.Equal(t, searcher.BFS, metric.Algorithm)
		require.Equal(t, searcher.Completed, metric.Status)
		require.Equal(t, metric.Steps, metric.Touched)
		require.Equal(t, 1, metric.GoalDepth)
		require.Equal(t, 1.0, metric.GoalCost)
		require.Equal(t, alg.Tree().Size(), metric.TreeSize)
		require.Equal(t, alg.Attributes(), metric.Attributes)
	})

	t.Run("marking runs without a goal", func(t *testing.T) {
		g, err := problem.NewGrid(nil, "X")
		require.NoError(t, err)
		alg := searcher.NewTreeSearch(g, searcher.WithIterations(0))
		c := NewCollector()
		c.Start("run-2", alg.Kind())
		c.AddStep(alg.Step() != nil)

		metric := c.Complete(alg, nil)

		require.Equal(t, -1, metric.GoalDepth)
		require.Equal(t, 1, metric.Steps)
		require.Zero(t, metric.Touched)
	})

	t.Run("recording nothing with the dummy collector", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("run-3", searcher.MCTS)
		c.AddStep(true)

		require.Equal(t, RunMetric{}, c.Complete(nil, nil))
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "compare")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	runs := []RunMetric{{
		RunID:      "r1",
		Algorithm:  searcher.AStar,
		Status:     searcher.Completed,
		Steps:      6,
		Touched:    6,
		GoalDepth:  5,
		GoalCost:   5,
		Duration:   time.Millisecond,
		Attributes: searcher.Attributes{"frontier": 4, "explored": 5},
	}}
	require.NoError(t, w.WriteRuns(runs))
	require.NoError(t, w.WriteSettings([]SettingsRecord{{RunID: "r1", Problem: "puzzle", Settings: searcher.Settings{Algorithm: searcher.AStar, Seed: 3}}}))
	require.NoError(t, w.WriteSteps([]StepRecord{{RunID: "r1", Step: 1, NodeID: "123480765", Name: "123|48_|765", Status: searcher.Running}}))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	rows := read("runs.csv")
	require.Len(t, rows, 2)
	require.Equal(t, "run_id", rows[0][0])
	require.Equal(t, []string{"r1", "astar", "COMPLETED", "6", "6", "0", "5", "5"}, rows[1][:8])
	require.Equal(t, "explored=5;frontier=4", rows[1][len(rows[1])-1], "Attributes are sorted by key")

	rows = read("settings.csv")
	require.Equal(t, "3", rows[1][len(rows[1])-1])

	rows = read("steps.csv")
	require.Equal(t, []string{"r1", "1", "123480765", "123|48_|765", "RUNNING"}, rows[1])
}
