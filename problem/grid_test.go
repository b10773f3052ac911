package problem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("starting an empty board with X to move", func(t *testing.T) {
		g, err := NewGrid(nil, "X")

		require.NoError(t, err)
		require.Equal(t, X, g.Initial().(GridState).ToMove())
		require.Len(t, g.Actions(g.Initial()), BoardLen)
	})

	t.Run("inferring the side to move from mark counts", func(t *testing.T) {
		g, err := NewGrid(GridBoard("X", "", "", "", "", "", "", "", ""), "O")

		require.NoError(t, err)
		require.Equal(t, O, g.Initial().(GridState).ToMove())
		require.True(t, g.IsMaximizing(g.Initial()), "O should be maximizing when chosen by the caller")
	})

	t.Run("rejecting unknown symbols", func(t *testing.T) {
		_, err := NewGrid(GridBoard("X", "Z", "", "", "", "", "", "", ""), "X")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("rejecting the wrong length", func(t *testing.T) {
		_, err := NewGrid(GridBoard("X", "O"), "X")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("rejecting impossible mark counts", func(t *testing.T) {
		_, err := NewGrid(GridBoard("X", "X", "", "", "", "", "", "", ""), "X")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("rejecting an unknown maximizing side", func(t *testing.T) {
		_, err := NewGrid(nil, "")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})
}

func TestGridUtility(t *testing.T) {
	won := GridBoard(
		"X", "X", "X",
		"O", "O", "",
		"", "", "",
	)

	t.Run("scoring a win for the maximizing side", func(t *testing.T) {
		g, err := NewGrid(won, "X")
		require.NoError(t, err)

		require.True(t, g.IsTerminal(g.Initial()))
		require.Empty(t, g.Actions(g.Initial()), "Terminal positions should have no moves")
		require.Equal(t, 1.0, g.Utility(g.Initial()))
	})

	t.Run("scoring the same win as a loss when O maximizes", func(t *testing.T) {
		g, err := NewGrid(won, "O")
		require.NoError(t, err)

		require.Equal(t, -1.0, g.Utility(g.Initial()))
	})

	t.Run("scoring a full board without lines as a draw", func(t *testing.T) {
		g, err := NewGrid(GridBoard(
			"X", "O", "X",
			"X", "O", "O",
			"O", "X", "X",
		), "X")
		require.NoError(t, err)

		require.True(t, g.IsTerminal(g.Initial()))
		require.Zero(t, g.Utility(g.Initial()))
	})

	t.Run("keeping cutoff estimates inside the utility range", func(t *testing.T) {
		g, err := NewGrid(GridBoard("", "", "", "", "X", "", "", "", ""), "X")
		require.NoError(t, err)

		h := g.Heuristic(g.Initial())
		require.Greater(t, h, 0.0, "Center mark should favor X")
		require.Less(t, h, 1.0)
	})
}
