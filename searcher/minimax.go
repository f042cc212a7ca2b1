package searcher

import "dama/game"

// Minimax is the unpruned reference search: the score of board for side to
// the given depth, from side's perspective. AlphaBeta returns the same score
// with any combination of its options.
func Minimax(board game.Board, side game.Side, depth int, evaluate game.EvalFunc) int {
	if evaluate == nil {
		evaluate = game.Evaluate
	}
	return minimax(&board, side, side, depth, evaluate)
}

func minimax(b *game.Board, toMove, maximizer game.Side, depth int, evaluate game.EvalFunc) int {
	moves := game.LegalMoves(*b, toMove)
	if len(moves) == 0 {
		return terminalScore(toMove, maximizer, depth)
	}
	if depth == 0 {
		return evaluate(*b, maximizer)
	}

	maximizing := toMove == maximizer
	value := Infinity
	if maximizing {
		value = -Infinity
	}
	for _, move := range moves {
		undo := b.Play(move)
		score := minimax(b, toMove.Opponent(), maximizer, depth-1, evaluate)
		undo()
		if maximizing {
			value = max(value, score)
		} else {
			value = min(value, score)
		}
	}
	return value
}
