package searcher

import (
	"context"

	"dama/experiments/metrics"
	"dama/game"
)

// Searcher finds the best move for side on board to the given depth.
type Searcher interface {
	BestMove(ctx context.Context, board game.Board, side game.Side, depth int) (Result, error)
}

// Result of a search. Found is false when the side has no legal move, which
// the caller must treat as a terminal position.
type Result struct {
	Move      game.Move
	Score     int // From the searching side's perspective
	Depth     int // Deepest completed iteration
	Found     bool
	Cancelled bool
	Metrics   metrics.SearchMetric
}

// terminalScore scores a position whose side to move has no legal move.
func terminalScore(toMove, maximizer game.Side, depth int) int {
	if toMove == maximizer {
		return -WinScore - depth
	}
	return WinScore + depth
}
