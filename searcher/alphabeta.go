package searcher

import (
	"context"
	"fmt"
	"sync"

	"dama/experiments/metrics"
	"dama/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(s *AlphaBeta)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning. Calls
// on one AlphaBeta are serialized; use one per goroutine for parallel games.
type AlphaBeta struct {
	mu        sync.Mutex
	evaluate  game.EvalFunc
	ordering  bool
	iterative bool
	table     *table // nil when disabled
	metrics   metrics.Collector

	// Per search
	ctx       context.Context
	maximizer game.Side
	aborted   bool
}

func WithEvaluator(evaluate game.EvalFunc) Option {
	return func(s *AlphaBeta) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMoveOrdering(enabled bool) Option {
	return func(s *AlphaBeta) {
		s.ordering = enabled
	}
}

func WithIterativeDeepening(enabled bool) Option {
	return func(s *AlphaBeta) {
		s.iterative = enabled
	}
}

// WithTranspositionTable caches up to capacity positions across searches. A
// capacity of zero disables the table.
func WithTranspositionTable(capacity int) Option {
	return func(s *AlphaBeta) {
		if capacity > 0 {
			s.table = newTable(capacity)
		} else {
			s.table = nil
		}
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		evaluate:  game.Evaluate,
		ordering:  true,
		iterative: true,
		table:     newTable(DefaultTableSize),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Reset drops every cached position, e.g. between games.
func (s *AlphaBeta) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		s.table.reset()
	}
}

// BestMove searches board for side to the given depth. board is not modified.
//
// When ctx is done the search stops between moves and returns the deepest
// completed iteration, or the best root move evaluated so far, with Cancelled
// set. ErrSearchCancelled is returned only if no root move was evaluated.
func (s *AlphaBeta) BestMove(ctx context.Context, board game.Board, side game.Side, depth int) (Result, error) {
	if depth < 1 || depth > MaxDepth {
		return Result{}, fmt.Errorf("%w: depth must be between 1 and %d, got %d", game.ErrInvalidState, MaxDepth, depth)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Start(depth)
	moves := game.LegalMoves(board, side)
	if len(moves) == 0 {
		return Result{Metrics: s.metrics.Complete()}, nil
	}

	s.ctx, s.maximizer, s.aborted = ctx, side, false
	defer func() { s.ctx = nil }()

	first := depth
	if s.iterative {
		first = 1
	}

	work := board
	var result Result
	var hint *game.Move
	for d := first; d <= depth; d++ {
		move, score, explored := s.searchRoot(&work, moves, d, hint)
		if s.aborted {
			if !result.Found && explored {
				result = Result{Move: move, Score: score, Found: true}
			}
			result.Cancelled = true
			s.metrics.SetCancelled()
			log.Debug().Msgf("search cancelled during depth %d, keeping %v", d, result.Move)
			break
		}

		result = Result{Move: move, Score: score, Depth: d, Found: true}
		s.metrics.CompleteIteration(d)
		hint = &result.Move
		log.Debug().Int("depth", d).Int("score", score).Stringer("move", move).Msg("completed iteration")
	}

	result.Metrics = s.metrics.Complete()
	if !result.Found {
		return result, game.ErrSearchCancelled
	}
	return result, nil
}

// searchRoot returns the best root move and its score, and whether any root
// move was fully evaluated. The first move wins ties.
func (s *AlphaBeta) searchRoot(b *game.Board, moves []game.Move, depth int, hint *game.Move) (game.Move, int, bool) {
	var best game.Move
	bestScore := -Infinity
	explored := false
	alpha, beta := -Infinity, Infinity
	s.metrics.AddNode()

	for _, move := range s.order(*b, moves, hint) {
		if s.cancelled() {
			break
		}
		undo := b.Play(move)
		score := s.search(b, s.maximizer.Opponent(), depth-1, alpha, beta)
		undo()
		if s.aborted { // Partial score
			break
		}

		if score > bestScore {
			best, bestScore = move, score
		}
		explored = true
		alpha = max(alpha, bestScore)
	}
	return best, bestScore, explored
}

func (s *AlphaBeta) search(b *game.Board, toMove game.Side, depth, alpha, beta int) int {
	s.metrics.AddNode()
	alphaOrig, betaOrig := alpha, beta

	var key tableKey
	var hint *game.Move
	if s.table != nil && depth > 0 {
		key = tableKey{hash: b.Hash(toMove), maximizer: s.maximizer}
		if entry, ok := s.table.lookup(key); ok {
			if score, ok := entry.probe(depth, &alpha, &beta); ok {
				s.metrics.AddTableHit()
				return score
			}
			if entry.hasMove {
				hint = &entry.move
			}
		}
	}

	moves := game.LegalMoves(*b, toMove)
	if len(moves) == 0 {
		return terminalScore(toMove, s.maximizer, depth)
	}
	if depth == 0 {
		return s.evaluate(*b, s.maximizer)
	}

	maximizing := toMove == s.maximizer
	value := Infinity
	if maximizing {
		value = -Infinity
	}
	var best game.Move
	for _, move := range s.order(*b, moves, hint) {
		if s.cancelled() {
			return value
		}
		undo := b.Play(move)
		score := s.search(b, toMove.Opponent(), depth-1, alpha, beta)
		undo()
		if s.aborted {
			return value
		}

		if maximizing {
			if score > value {
				value, best = score, move
			}
			alpha = max(alpha, value)
		} else {
			if score < value {
				value, best = score, move
			}
			beta = min(beta, value)
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}

	if s.table != nil {
		s.table.store(key, tableEntry{
			depth:   depth,
			score:   value,
			bound:   determineBound(value, alphaOrig, betaOrig),
			move:    best,
			hasMove: true,
		})
	}
	return value
}

func (s *AlphaBeta) cancelled() bool {
	if s.aborted {
		return true
	}
	select {
	case <-s.ctx.Done():
		s.aborted = true
	default:
	}
	return s.aborted
}

// order returns a copy of moves, most promising first: the hinted move, then
// by material gained. Sorting is stable so ties keep generation order.
func (s *AlphaBeta) order(b game.Board, moves []game.Move, hint *game.Move) []game.Move {
	ordered := slices.Clone(moves)
	if s.ordering {
		slices.SortStableFunc(ordered, func(x, y game.Move) int {
			return game.MaterialGain(b, y) - game.MaterialGain(b, x)
		})
	}
	if hint != nil {
		if i := game.IndexOf(ordered, *hint); i > 0 {
			move := ordered[i]
			copy(ordered[1:i+1], ordered[:i])
			ordered[0] = move
		}
	}
	return ordered
}
