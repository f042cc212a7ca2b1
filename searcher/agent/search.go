package agent

import (
	"context"
	"fmt"
	"time"

	"dama/experiments/metrics"
	"dama/game"
	"dama/searcher"
)

type searchAgent struct {
	searcher *searcher.AlphaBeta
	depth    int
	budget   time.Duration
}

// NewSearchAgent returns an agent that searches to depth. A positive budget
// bounds the time per move; the deepest iteration completed in time is played.
func NewSearchAgent(s *searcher.AlphaBeta, depth int, budget time.Duration) Agent {
	return searchAgent{searcher: s, depth: depth, budget: budget}
}

func (a searchAgent) FindMove(ctx context.Context, state game.GameState) (game.Move, metrics.SearchMetric, error) {
	if state.Terminal() {
		return game.Move{}, metrics.SearchMetric{}, game.ErrGameOver
	}
	if a.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.budget)
		defer cancel()
	}

	outcome := <-a.searcher.Go(ctx, state.Board(), state.Turn(), a.depth)
	if outcome.Err != nil {
		return game.Move{}, outcome.Metrics, outcome.Err
	}
	if !outcome.Found {
		return game.Move{}, outcome.Metrics, fmt.Errorf("%w: no legal move for %v", game.ErrGameOver, state.Turn())
	}
	return outcome.Move, outcome.Metrics, nil
}
