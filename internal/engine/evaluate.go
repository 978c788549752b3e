package engine

// positionalWeights holds the per-cell weights of the positional term,
// flat row-major, keyed by board size. Center over corners over edge
// midpoints. Sizes without a table contribute no positional term.
var positionalWeights = map[int][]int{
	3: {
		2, 1, 2,
		1, 3, 1,
		2, 1, 2,
	},
}

// evaluate scores a depth-exhausted, non-terminal board from the
// maximizer's perspective. The value only ranks positions relative to
// each other; it is not a win/draw/loss verdict.
func evaluate(board *Board, maximizer, minimizer string) int {
	return positionalScore(board, maximizer, minimizer) + lineThreatScore(board, maximizer, minimizer)
}

// positionalScore adds the weight of every cell the maximizer holds and
// subtracts the weight of every cell the minimizer holds.
func positionalScore(board *Board, maximizer, minimizer string) int {
	weights, ok := positionalWeights[board.size]
	if !ok {
		return 0
	}

	score := 0
	for idx, cell := range board.cells {
		switch cell {
		case maximizer:
			score += weights[idx]
		case minimizer:
			score -= weights[idx]
		}
	}

	return score
}

// lineThreatScore sums the threat of every win combo. A combo holding
// marks of both players is blocked and counts for nothing; a combo held
// by one player alone counts 1, 10 or 100 by the number of its marks.
func lineThreatScore(board *Board, maximizer, minimizer string) int {
	score := 0

	for _, combo := range board.combos {
		own, foe := 0, 0
		for _, cell := range combo {
			switch board.at(cell) {
			case maximizer:
				own++
			case minimizer:
				foe++
			}
		}

		if own > 0 && foe > 0 {
			continue
		}

		switch {
		case own > 0:
			score += threatWeight(own)
		case foe > 0:
			score -= threatWeight(foe)
		}
	}

	return score
}

func threatWeight(count int) int {
	weight := 1
	for i := 1; i < count; i++ {
		weight *= 10
	}

	return weight
}
