package agent

import (
	"context"

	"dama/experiments/metrics"
	"dama/game"
)

type Agent interface {
	// FindMove returns a move for the side to move and the search metrics (if
	// collected). The move is not guaranteed to be legal; callers validate it.
	FindMove(ctx context.Context, state game.GameState) (game.Move, metrics.SearchMetric, error)
}
