package game

import "fmt"

// MaxPieces is the number of pieces each side starts with.
const MaxPieces = 12

// GameState is the authoritative state of a game. It is a value: ApplyMove
// returns a new state and never changes the receiver.
type GameState struct {
	board    Board
	turn     Side
	terminal bool
	winner   Side
	ply      int
	lastMove *Move
}

// NewGame returns the initial position with Light to move.
func NewGame() GameState {
	gs := GameState{board: NewBoard(), turn: Light}
	gs.updateTerminal()
	return gs
}

// NewGameState resumes play from an arbitrary position. The board must pass
// ValidateBoard.
func NewGameState(b Board, turn Side) (GameState, error) {
	if turn != Light && turn != Dark {
		return GameState{}, fmt.Errorf("%w: unknown side %d", ErrInvalidState, turn)
	}
	if err := ValidateBoard(b); err != nil {
		return GameState{}, err
	}
	gs := GameState{board: b, turn: turn}
	gs.updateTerminal()
	return gs, nil
}

// ValidateBoard checks the invariants every reachable position satisfies.
func ValidateBoard(b Board) error {
	counts := map[Side]int{}
	for row := range b {
		for col, c := range b[row] {
			p, ok := c.Piece()
			if !ok {
				if c != Empty {
					return fmt.Errorf("%w: unknown cell %d at %d,%d", ErrInvalidState, c, row, col)
				}
				continue
			}
			pos := Position{Row: row, Col: col}
			if !pos.IsDark() {
				return fmt.Errorf("%w: piece on light square %v", ErrInvalidState, pos)
			}
			if p.Rank == Man && row == p.Side.PromotionRow() {
				return fmt.Errorf("%w: unpromoted %v man on %v", ErrInvalidState, p.Side, pos)
			}
			counts[p.Side]++
		}
	}
	for _, side := range []Side{Light, Dark} {
		if counts[side] > MaxPieces {
			return fmt.Errorf("%w: %v has %d pieces", ErrInvalidState, side, counts[side])
		}
	}
	return nil
}

// WithPly sets the move counter of a resumed game.
func (gs GameState) WithPly(ply int) GameState {
	gs.ply = ply
	return gs
}

func (gs GameState) Board() Board {
	return gs.board
}

// Turn is the side to move.
func (gs GameState) Turn() Side {
	return gs.turn
}

func (gs GameState) Terminal() bool {
	return gs.terminal
}

// Winner returns the winning side once the game is over.
func (gs GameState) Winner() (Side, bool) {
	return gs.winner, gs.terminal
}

// Ply is the number of moves played since the state was created.
func (gs GameState) Ply() int {
	return gs.ply
}

func (gs GameState) LastMove() (Move, bool) {
	if gs.lastMove == nil {
		return Move{}, false
	}
	return *gs.lastMove, true
}

func (gs GameState) LegalMoves() []Move {
	if gs.terminal {
		return nil
	}
	return LegalMoves(gs.board, gs.turn)
}

func (gs GameState) Hash() StateHash {
	return gs.board.Hash(gs.turn)
}

// ApplyMove plays m for the side to move. It fails with ErrIllegalMove unless
// m is one of LegalMoves(); a rejected move leaves the state as it was. A
// finished game has no legal moves, so its error also wraps ErrGameOver.
func (gs GameState) ApplyMove(m Move) (GameState, error) {
	if gs.terminal {
		return gs, fmt.Errorf("%w: %w", ErrIllegalMove, ErrGameOver)
	}
	if IndexOf(gs.LegalMoves(), m) < 0 {
		return gs, fmt.Errorf("%w: %v is not legal for %v", ErrIllegalMove, m, gs.turn)
	}
	board, err := gs.board.Apply(gs.turn, m)
	if err != nil {
		return gs, err
	}

	played := m
	played.Captured = append([]Position(nil), m.Captured...)
	next := GameState{
		board:    board,
		turn:     gs.turn.Opponent(),
		ply:      gs.ply + 1,
		lastMove: &played,
	}
	next.updateTerminal()
	return next, nil
}

// Apply is the functional form of ApplyMove.
func Apply(gs GameState, m Move) (GameState, error) {
	return gs.ApplyMove(m)
}

// updateTerminal ends the game when the side to move has no piece or no legal
// move; the opponent wins.
func (gs *GameState) updateTerminal() {
	if gs.board.Count(gs.turn) == 0 || len(LegalMoves(gs.board, gs.turn)) == 0 {
		gs.terminal = true
		gs.winner = gs.turn.Opponent()
		return
	}
	gs.terminal = false
	gs.winner = Light
}

func (gs GameState) String() string {
	status := "to move: " + gs.turn.String()
	if gs.terminal {
		status = "winner: " + gs.winner.String()
	}
	return fmt.Sprintf("%s%s (ply %d)", gs.board, status, gs.ply)
}
