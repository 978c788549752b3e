package engine

import "math"

// winScore is the base of the terminal scores. It strictly dominates
// the largest magnitude the heuristic can produce, so a proven win or
// loss always outranks any depth-cutoff estimate.
const winScore = 1000

// NodeVisit describes one node expansion during a search.
type NodeVisit struct {
	Depth      int
	Maximizing bool
}

// NodeObserver is called once for every node the searcher visits.
type NodeObserver func(visit NodeVisit)

// Searcher picks moves with alpha-beta pruned minimax over a single
// mutable board: it writes a candidate mark into an empty cell,
// recurses, then restores the cell before trying the next candidate.
// That discipline is only sound under strictly nested depth-first
// recursion, so a Searcher must never be shared across goroutines that
// hold the same board.
type Searcher struct {
	depth    int
	observer NodeObserver
}

// NewSearcher - creates a searcher with the given depth budget. Depth 9
// or more plays a 3×3 board exhaustively; smaller budgets fall back to
// the heuristic at the cutoff. Budgets below 1 are raised to 1.
func NewSearcher(depth int) *Searcher {
	if depth < 1 {
		depth = 1
	}

	return &Searcher{depth: depth}
}

// SetObserver - registers a per-node callback, replacing any previous
// one. A nil observer turns instrumentation off.
func (that *Searcher) SetObserver(observer NodeObserver) {
	that.observer = observer
}

// BestMove - finds the strongest cell for the given mark under optimal
// play of its opponent. The board is mutated during the search and
// restored before returning. The second result is false when the board
// has no empty cell left or the mark is not one of the board's two.
func (that *Searcher) BestMove(board *Board, mark string) (Coord, bool) {
	opponent := board.Opponent(mark)
	if opponent == EmptyCell {
		return Coord{}, false
	}

	var (
		bestMove  Coord
		bestScore int
		found     bool
	)

	for idx, cell := range board.cells {
		if cell != EmptyCell {
			continue
		}

		// Each candidate searches a window opened one point below the
		// best score so far. An equal score then lies inside the window
		// and is exact, while a pruned branch fails low strictly under
		// bestScore and never reaches the tie-break.
		alpha := math.MinInt32
		if found {
			alpha = bestScore - 1
		}

		board.place(idx, mark)
		score := that.search(board, mark, opponent, that.depth-1, false, alpha, math.MaxInt32)
		board.clear(idx)

		// Equal scores resolve to the later cell in row-major order.
		if !found || score >= bestScore {
			bestMove = board.coord(idx)
			bestScore = score
			found = true
		}
	}

	return bestMove, found
}

// search is the recursive minimax step. Alpha and beta travel by value,
// so sibling branches never see each other's bounds. Terminal states
// are checked before expansion; the score of a decided position is
// biased by the remaining depth so that faster wins and slower losses
// are preferred.
func (that *Searcher) search(board *Board, maximizer, minimizer string, depth int, maximizing bool, alpha, beta int) int {
	if that.observer != nil {
		that.observer(NodeVisit{Depth: depth, Maximizing: maximizing})
	}

	switch {
	case board.hasLine(maximizer):
		return winScore + depth
	case board.hasLine(minimizer):
		return -winScore - depth
	case board.isFull():
		return 0
	}

	if depth <= 0 {
		return evaluate(board, maximizer, minimizer)
	}

	if maximizing {
		best := math.MinInt32

		for idx, cell := range board.cells {
			if cell != EmptyCell {
				continue
			}

			board.place(idx, maximizer)
			score := that.search(board, maximizer, minimizer, depth-1, false, alpha, beta)
			board.clear(idx)

			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := math.MaxInt32

	for idx, cell := range board.cells {
		if cell != EmptyCell {
			continue
		}

		board.place(idx, minimizer)
		score := that.search(board, maximizer, minimizer, depth-1, true, alpha, beta)
		board.clear(idx)

		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}

	return best
}
