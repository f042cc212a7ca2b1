package searcher

import (
	"context"

	"dama/game"
)

var _ Searcher = (*AlphaBeta)(nil)

// LegalMoves lists every legal move for side; captures are mandatory.
func LegalMoves(board game.Board, side game.Side) []game.Move {
	return game.LegalMoves(board, side)
}

// Evaluate scores board from side's perspective with the default weights.
func Evaluate(board game.Board, side game.Side) int {
	return game.Evaluate(board, side)
}

// BestMove runs a default AlphaBeta search. ok is false when side has no legal
// move.
func BestMove(ctx context.Context, board game.Board, side game.Side, depth int) (move game.Move, ok bool, err error) {
	result, err := NewAlphaBeta().BestMove(ctx, board, side, depth)
	if err != nil {
		return game.Move{}, false, err
	}
	return result.Move, result.Found, nil
}
