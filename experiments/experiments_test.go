package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"stepsearch/config"
	"stepsearch/problem"
	"stepsearch/searcher"

	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Run("running single-agent algorithms to the same optimal depth", func(t *testing.T) {
		report, err := Compare(config.Default(), []searcher.Kind{searcher.BFS, searcher.AStar, searcher.IDAStar, searcher.Minimax})

		require.NoError(t, err)
		require.Len(t, report.Runs, 3, "Minimax does not apply to the puzzle")
		for _, run := range report.Runs {
			require.Equal(t, searcher.Completed, run.Status, string(run.Algorithm))
			require.Equal(t, 5, run.GoalDepth, string(run.Algorithm))
		}
		require.Len(t, report.Settings, 3)
		require.Equal(t, searcher.AStar, report.Settings[1].Algorithm)
		require.Equal(t, report.Runs[1].RunID, report.Settings[1].RunID)
	})

	t.Run("agreeing on the root value with and without pruning", func(t *testing.T) {
		cfg := config.Default()
		cfg.Problem.Kind = problem.KindGrid
		cfg.Problem.Initial = problem.GridBoard("X", "O", "X", "", "O", "", "", "", "")

		report, err := Compare(cfg, []searcher.Kind{searcher.Minimax, searcher.AlphaBeta})

		require.NoError(t, err)
		require.Len(t, report.Runs, 2)
		require.Equal(t, report.Runs[0].Attributes["rootValue"], report.Runs[1].Attributes["rootValue"])
		require.LessOrEqual(t, report.Runs[1].TreeSize, report.Runs[0].TreeSize)
		require.Less(t, report.Runs[1].Attributes["visited"], report.Runs[0].Attributes["visited"])
	})

	t.Run("recording every touched node", func(t *testing.T) {
		report, err := Compare(config.Default(), []searcher.Kind{searcher.AStar})

		require.NoError(t, err)
		require.Len(t, report.Steps, report.Runs[0].Touched)
		require.Equal(t, 1, report.Steps[0].Step)
	})

	t.Run("failing on a malformed problem", func(t *testing.T) {
		cfg := config.Default()
		cfg.Problem.Initial = problem.PuzzleBoard(0)

		_, err := Compare(cfg, []searcher.Kind{searcher.BFS})

		require.ErrorIs(t, err, problem.ErrMalformedBoard)
	})
}

func TestRun(t *testing.T) {
	root := t.TempDir()

	dir, err := Run(root, "puzzle", config.Default(), []searcher.Kind{searcher.UCS, searcher.Greedy})

	require.NoError(t, err)
	require.DirExists(t, dir)
	for _, name := range []string{"settings.csv", "runs.csv", "steps.csv"} {
		require.FileExists(t, filepath.Join(dir, name))
	}

	f, err := os.Open(filepath.Join(dir, "runs.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "Header plus one row per run")
	require.Equal(t, "ucs", rows[1][1])
	require.Equal(t, "COMPLETED", rows[1][2])
}
