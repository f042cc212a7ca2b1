package searcher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dama/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustBoard(t *testing.T, rows ...string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows)
	require.NoError(t, err)
	return b
}

// randomStates plays seeded random games and samples positions along the way.
func randomStates(t *testing.T, seed uint64, count int) []game.GameState {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	var states []game.GameState
	for len(states) < count {
		state := game.NewGame()
		for ply := 0; ply < 60 && !state.Terminal(); ply++ {
			moves := state.LegalMoves()
			next, err := state.ApplyMove(moves[r.Intn(len(moves))])
			require.NoError(t, err)
			state = next
			if ply%7 == 3 && !state.Terminal() {
				states = append(states, state)
			}
		}
	}
	return states[:count]
}

func TestBestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("opening with a simple forward move", func(t *testing.T) {
		board := game.NewBoard()
		result, err := NewAlphaBeta().BestMove(ctx, board, game.Light, 1)
		require.NoError(t, err)
		require.True(t, result.Found)
		require.False(t, result.Move.IsCapture())
		require.Equal(t, -1, result.Move.To.Row-result.Move.From.Row, "Light men should move up the board")
		require.GreaterOrEqual(t, game.IndexOf(game.LegalMoves(board, game.Light), result.Move), 0)
		require.Equal(t, game.NewBoard(), board, "Should not modify the caller's board")
	})

	t.Run("taking the only capture", func(t *testing.T) {
		board := mustBoard(t,
			"........",
			"........",
			"........",
			"..d.....",
			"...l....",
			"........",
			"........",
			"........",
		)
		result, err := NewAlphaBeta().BestMove(ctx, board, game.Light, 3)
		require.NoError(t, err)
		require.True(t, result.Found)
		require.Equal(t, game.Move{
			From:     game.Position{Row: 4, Col: 3},
			To:       game.Position{Row: 2, Col: 1},
			Captured: []game.Position{{Row: 3, Col: 2}},
		}, result.Move)
		require.Equal(t, WinScore+2, result.Score, "Win found with two plies to spare")
		require.Equal(t, 3, result.Depth)
	})

	t.Run("no move when blocked", func(t *testing.T) {
		blocked := mustBoard(t,
			"........",
			"........",
			"........",
			"........",
			"........",
			"..d.....",
			".d......",
			"l.......",
		)
		require.Empty(t, game.LegalMoves(blocked, game.Light))

		result, err := NewAlphaBeta().BestMove(ctx, blocked, game.Light, 4)
		require.NoError(t, err)
		require.False(t, result.Found)
	})

	t.Run("rejecting out of range depth", func(t *testing.T) {
		_, err := NewAlphaBeta().BestMove(ctx, game.NewBoard(), game.Light, 0)
		require.ErrorIs(t, err, game.ErrInvalidState)
		_, err = NewAlphaBeta().BestMove(ctx, game.NewBoard(), game.Light, MaxDepth+1)
		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("scoring a win by the depth left", func(t *testing.T) {
		board := mustBoard(t,
			"........",
			"........",
			"........",
			"..d.....",
			"...l....",
			"........",
			"........",
			"L.......",
		)
		result, err := NewAlphaBeta().BestMove(ctx, board, game.Light, 5)
		require.NoError(t, err)
		require.True(t, result.Move.IsCapture())
		require.Equal(t, WinScore+4, result.Score)
	})
}

func TestSearchMatchesMinimax(t *testing.T) {
	ctx := context.Background()
	configs := map[string][]Option{
		"plain":              {WithMoveOrdering(false), WithIterativeDeepening(false), WithTranspositionTable(0)},
		"ordering":           {WithMoveOrdering(true), WithIterativeDeepening(false), WithTranspositionTable(0)},
		"iterative":          {WithMoveOrdering(false), WithIterativeDeepening(true), WithTranspositionTable(0)},
		"table":              {WithMoveOrdering(false), WithIterativeDeepening(false), WithTranspositionTable(1 << 16)},
		"ordering+iterative": {WithMoveOrdering(true), WithIterativeDeepening(true), WithTranspositionTable(0)},
		"all":                {WithMoveOrdering(true), WithIterativeDeepening(true), WithTranspositionTable(1 << 16)},
		"small table":        {WithTranspositionTable(64)},
	}
	states := append([]game.GameState{game.NewGame()}, randomStates(t, 11, 12)...)

	for name, options := range configs {
		t.Run(name, func(t *testing.T) {
			s := NewAlphaBeta(options...)
			for i, state := range states {
				for depth := 1; depth <= 4; depth++ {
					want := Minimax(state.Board(), state.Turn(), depth, game.Evaluate)
					result, err := s.BestMove(ctx, state.Board(), state.Turn(), depth)
					require.NoError(t, err)
					require.True(t, result.Found)
					require.Equal(t, want, result.Score, "Should match minimax for state %d at depth %d\n%v", i, depth, state)

					// The chosen move must achieve the score.
					after, err := state.Board().Apply(state.Turn(), result.Move)
					require.NoError(t, err)
					require.Equal(t, want, -Minimax(after, state.Turn().Opponent(), depth-1, game.Evaluate),
						"Move %v should achieve the minimax score", result.Move)
				}
			}
		})
	}
}

func TestCancellation(t *testing.T) {
	t.Run("before the search starts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := NewAlphaBeta().BestMove(ctx, game.NewBoard(), game.Light, 6)
		require.ErrorIs(t, err, game.ErrSearchCancelled)
		require.False(t, result.Found)
		require.True(t, result.Cancelled)
	})

	t.Run("keeping the deepest completed iteration", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		board := game.NewBoard()
		result, err := NewAlphaBeta(WithMetrics()).BestMove(ctx, board, game.Light, 30)
		require.NoError(t, err)
		require.True(t, result.Found)
		require.True(t, result.Cancelled)
		require.True(t, result.Metrics.Cancelled)
		require.Less(t, result.Depth, 30)
		require.GreaterOrEqual(t, game.IndexOf(game.LegalMoves(board, game.Light), result.Move), 0)
	})

	t.Run("searcher is reusable afterwards", func(t *testing.T) {
		s := NewAlphaBeta()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.BestMove(ctx, game.NewBoard(), game.Light, 4)
		require.Error(t, err)

		result, err := s.BestMove(context.Background(), game.NewBoard(), game.Light, 4)
		require.NoError(t, err)
		require.False(t, result.Cancelled)
		require.Equal(t, Minimax(game.NewBoard(), game.Light, 4, game.Evaluate), result.Score)
	})
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("counting iterations and cutoffs", func(t *testing.T) {
		result, err := NewAlphaBeta(WithMetrics()).BestMove(ctx, game.NewBoard(), game.Light, 4)
		require.NoError(t, err)
		require.Equal(t, 4, result.Metrics.MaxDepth)
		require.Equal(t, 4, result.Metrics.Depth)
		require.Equal(t, 4, result.Metrics.Iterations)
		require.Positive(t, result.Metrics.Nodes)
		require.Positive(t, result.Metrics.Cutoffs)
		require.False(t, result.Metrics.Cancelled)
	})

	t.Run("reusing the table across searches", func(t *testing.T) {
		s := NewAlphaBeta(WithMetrics(), WithIterativeDeepening(false))
		first, err := s.BestMove(ctx, game.NewBoard(), game.Light, 3)
		require.NoError(t, err)
		require.Positive(t, s.table.size())

		second, err := s.BestMove(ctx, game.NewBoard(), game.Light, 3)
		require.NoError(t, err)
		require.Equal(t, first.Score, second.Score)
		require.Equal(t, first.Move, second.Move)
		require.Positive(t, second.Metrics.TableHits)
		require.Less(t, second.Metrics.Nodes, first.Metrics.Nodes)

		s.Reset()
		require.Zero(t, s.table.size())
	})

	t.Run("ordering changes only the visit order", func(t *testing.T) {
		plain := NewAlphaBeta(WithMetrics(), WithMoveOrdering(false), WithIterativeDeepening(false), WithTranspositionTable(0))
		ordered := NewAlphaBeta(WithMetrics(), WithIterativeDeepening(false), WithTranspositionTable(0))
		state := randomStates(t, 3, 1)[0]

		a, err := plain.BestMove(ctx, state.Board(), state.Turn(), 4)
		require.NoError(t, err)
		b, err := ordered.BestMove(ctx, state.Board(), state.Turn(), 4)
		require.NoError(t, err)
		require.Equal(t, a.Score, b.Score)
		require.Positive(t, a.Metrics.Nodes)
		require.Positive(t, b.Metrics.Nodes)
	})
}

func TestGo(t *testing.T) {
	board := game.NewBoard()
	s := NewAlphaBeta()
	want, err := NewAlphaBeta().BestMove(context.Background(), board, game.Dark, 3)
	require.NoError(t, err)

	outcomes := s.Go(context.Background(), board, game.Dark, 3)
	board[5][0] = game.Empty // Caller keeps its own copy

	outcome, ok := <-outcomes
	require.True(t, ok)
	require.NoError(t, outcome.Err)
	require.Equal(t, want.Move, outcome.Move)
	require.Equal(t, want.Score, outcome.Score)

	_, ok = <-outcomes
	require.False(t, ok, "Should close the channel after one outcome")
}

func TestConcurrentSearchers(t *testing.T) {
	states := randomStates(t, 5, 4)
	outcomes := make([]<-chan Outcome, len(states))
	for i, state := range states {
		outcomes[i] = NewAlphaBeta().Go(context.Background(), state.Board(), state.Turn(), 3)
	}
	for i, state := range states {
		outcome := <-outcomes[i]
		require.NoError(t, outcome.Err)
		require.Equal(t, Minimax(state.Board(), state.Turn(), 3, game.Evaluate), outcome.Score, fmt.Sprintf("state %d", i))
	}
}

func TestPackageFunctions(t *testing.T) {
	board := game.NewBoard()
	require.Equal(t, game.LegalMoves(board, game.Light), LegalMoves(board, game.Light))
	require.Equal(t, 0, Evaluate(board, game.Dark))

	move, ok, err := BestMove(context.Background(), board, game.Light, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.GreaterOrEqual(t, game.IndexOf(LegalMoves(board, game.Light), move), 0)
}
