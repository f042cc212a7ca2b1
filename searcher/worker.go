package searcher

import (
	"context"

	"dama/game"
)

type Outcome struct {
	Result
	Err error
}

// Go runs BestMove on its own goroutine. The board is copied before the call
// returns, so the caller may keep playing on its own board. The channel
// yields exactly one Outcome and is then closed.
func (s *AlphaBeta) Go(ctx context.Context, board game.Board, side game.Side, depth int) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := s.BestMove(ctx, board, side, depth)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}
