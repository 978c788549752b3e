package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreatWeight(t *testing.T) {
	// Given: open lines of one, two and three marks
	// Then: their magnitudes grow by a factor of ten
	assert.Equal(t, 1, threatWeight(1))
	assert.Equal(t, 10, threatWeight(2))
	assert.Equal(t, 100, threatWeight(3))
}

func TestPositionalScore(t *testing.T) {
	t.Run("Weighs center over corners over edges", func(t *testing.T) {
		// Given: X in the center, O in a corner and on an edge
		board := mustRestore(t, []string{
			"O", EmptyCell, EmptyCell,
			"O", "X", EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// When: scoring the occupied cells
		score := positionalScore(board, "X", "O")

		// Then: center 3 minus corner 2 minus edge 1
		assert.Equal(t, 0, score)
		assert.Equal(t, 0, positionalScore(board, "O", "X"))
	})

	t.Run("Contributes nothing for sizes without a weight table", func(t *testing.T) {
		// Given: a 4x4 board with a mark on it
		board, err := NewBoard(4, "X", "O")
		require.NoError(t, err)
		require.NoError(t, board.Apply(Move{Row: 0, Col: 0, Mark: "X"}))

		// Then: the positional term is zero
		assert.Equal(t, 0, positionalScore(board, "X", "O"))
	})
}

func TestLineThreatScore(t *testing.T) {
	t.Run("A blocked line counts for nothing", func(t *testing.T) {
		// Given: X and O sharing the first row, one corner each
		board := mustRestore(t, []string{
			"X", EmptyCell, "O",
			EmptyCell, EmptyCell, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// When: summing the line threats
		score := lineThreatScore(board, "X", "O")

		// Then: the shared row is dead and the single-mark lines cancel
		assert.Equal(t, 0, score)
	})

	t.Run("Two exclusive marks on a line count ten", func(t *testing.T) {
		// Given: X holding two cells of the first row, nothing else
		board := mustRestore(t, []string{
			"X", "X", EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// When: summing the line threats
		score := lineThreatScore(board, "X", "O")

		// Then: the row counts 10 and each single-mark line 1
		assert.Equal(t, 13, score)
		assert.Equal(t, -13, lineThreatScore(board, "O", "X"))
	})

	t.Run("A completed line counts a hundred", func(t *testing.T) {
		// Given: X across the whole first row
		board := mustRestore(t, []string{
			"X", "X", "X",
			EmptyCell, EmptyCell, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// When: summing the line threats
		score := lineThreatScore(board, "X", "O")

		// Then: the row counts 100, the crossing lines 1 each
		assert.Equal(t, 105, score)
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("Combines the positional and threat terms", func(t *testing.T) {
		// Given: a lone X in the center
		board := mustRestore(t, []string{
			EmptyCell, EmptyCell, EmptyCell,
			EmptyCell, "X", EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// When: evaluating for X
		score := evaluate(board, "X", "O")

		// Then: weight 3 plus one point for each of the four lines
		assert.Equal(t, 7, score)
	})

	t.Run("Flips sign with the perspective", func(t *testing.T) {
		// Given: an uneven position
		board := mustRestore(t, []string{
			"X", "X", EmptyCell,
			EmptyCell, "O", EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		})

		// Then: the two perspectives mirror each other
		assert.Equal(t, evaluate(board, "X", "O"), -evaluate(board, "O", "X"))
	})
}
