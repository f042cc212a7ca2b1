package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func requireMoves(t *testing.T, want, got []Move) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestLegalMovesOpening(t *testing.T) {
	want := []Move{
		{From: Position{5, 0}, To: Position{4, 1}},
		{From: Position{5, 2}, To: Position{4, 1}},
		{From: Position{5, 2}, To: Position{4, 3}},
		{From: Position{5, 4}, To: Position{4, 3}},
		{From: Position{5, 4}, To: Position{4, 5}},
		{From: Position{5, 6}, To: Position{4, 5}},
		{From: Position{5, 6}, To: Position{4, 7}},
	}

	requireMoves(t, want, LegalMoves(NewBoard(), Light))
	require.Len(t, LegalMoves(NewBoard(), Dark), 7)
}

func TestLegalMovesCaptures(t *testing.T) {
	t.Run("single capture is the only legal move", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"........",
			"........",
			"..d.....",
			"...l....",
			"........",
			"........",
			"........",
		)

		want := []Move{{From: Position{4, 3}, To: Position{2, 1}, Captured: []Position{{3, 2}}}}
		requireMoves(t, want, LegalMoves(b, Light))
	})

	t.Run("capture is mandatory across all pieces", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"........",
			"........",
			"........",
			".d......",
			"l.....l.",
			"........",
			"........",
		)

		want := []Move{{From: Position{5, 0}, To: Position{3, 2}, Captured: []Position{{4, 1}}}}
		requireMoves(t, want, LegalMoves(b, Light))
		require.True(t, HasCapture(b, Light))
	})

	t.Run("chaining multi-jumps into maximal sequences", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"........",
			".d.d....",
			"........",
			".d......",
			"l.......",
			"........",
			"........",
		)

		want := []Move{
			{From: Position{5, 0}, To: Position{1, 0}, Captured: []Position{{4, 1}, {2, 1}}},
			{From: Position{5, 0}, To: Position{1, 4}, Captured: []Position{{4, 1}, {2, 3}}},
		}
		requireMoves(t, want, LegalMoves(b, Light))
	})

	t.Run("men never capture backwards", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"........",
			"........",
			"..l.....",
			".d......",
			"........",
			"........",
			"........",
		)

		for _, m := range LegalMoves(b, Light) {
			require.False(t, m.IsCapture())
		}
	})

	t.Run("kings capture in every direction", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"........",
			"........",
			"..L.....",
			"...d....",
			"........",
			"........",
			"........",
		)

		want := []Move{{From: Position{3, 2}, To: Position{5, 4}, Captured: []Position{{4, 3}}}}
		requireMoves(t, want, LegalMoves(b, Light))
	})

	t.Run("a man crowned by a capture chain lands as a king", func(t *testing.T) {
		b := mustBoard(t,
			"........",
			"..d.....",
			"........",
			"..d.....",
			".l......",
			"........",
			"........",
			"........",
		)

		want := []Move{{From: Position{4, 1}, To: Position{0, 1}, Captured: []Position{{3, 2}, {1, 2}}}}
		got := LegalMoves(b, Light)
		requireMoves(t, want, got)

		after, err := b.Apply(Light, got[0])
		require.NoError(t, err)
		require.Equal(t, LightKing, after[0][1])
	})
}

func TestLegalMovesKings(t *testing.T) {
	b := mustBoard(t,
		"........",
		"........",
		"........",
		"..L.....",
		"........",
		"........",
		"........",
		"........",
	)

	want := []Move{
		{From: Position{3, 2}, To: Position{2, 1}},
		{From: Position{3, 2}, To: Position{2, 3}},
		{From: Position{3, 2}, To: Position{4, 1}},
		{From: Position{3, 2}, To: Position{4, 3}},
	}
	requireMoves(t, want, LegalMoves(b, Light))
}

func TestLegalMovesBlocked(t *testing.T) {
	b := mustBoard(t,
		".D......",
		"l.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)

	require.Empty(t, LegalMoves(b, Light), "A fully blocked side should have no moves")
	require.NotEmpty(t, LegalMoves(b, Dark))
}

// Random self-play checks the generator's invariants on reachable positions.
func TestLegalMovesInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for game := 0; game < 20; game++ {
		state := NewGame()
		for !state.Terminal() && state.Ply() < 200 {
			board := state.Board()
			moves := state.LegalMoves()
			require.NotEmpty(t, moves)

			if HasCapture(board, state.Turn()) {
				for _, m := range moves {
					require.True(t, m.IsCapture(), "Captures should be mandatory")
				}
			}

			m := moves[r.Intn(len(moves))]
			next, err := state.ApplyMove(m)
			require.NoError(t, err)

			after := next.Board()
			total := board.Count(Light) + board.Count(Dark)
			require.Equal(t, total-len(m.Captured), after.Count(Light)+after.Count(Dark),
				"Pieces should decrease by exactly the number captured")
			if board[m.From.Row][m.From.Col].IsKing() {
				require.True(t, after[m.To.Row][m.To.Col].IsKing(), "Kings should never revert to men")
			}
			state = next
		}
	}
}
