package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Board is an 8x8 grid indexed [row][col]. It is a value type: assigning a
// Board copies it, which is how snapshots are taken.
type Board [Size][Size]Cell

// NewBoard returns the standard initial placement: Dark men on rows 0-2,
// Light men on rows 5-7, dark squares only.
func NewBoard() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := Position{Row: row, Col: col}
			if !p.IsDark() {
				continue
			}
			switch {
			case row < 3:
				b[row][col] = DarkMan
			case row > 4:
				b[row][col] = LightMan
			}
		}
	}
	return b
}

func (b *Board) cell(p Position) Cell {
	return b[p.Row][p.Col]
}

func (b *Board) set(p Position, c Cell) {
	b[p.Row][p.Col] = c
}

func (b Board) At(p Position) (Cell, error) {
	if !p.InBounds() {
		return Empty, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return b.cell(p), nil
}

// Put places c on p. Pieces may only stand on dark squares.
func (b *Board) Put(p Position, c Cell) error {
	if !p.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if c != Empty && !p.IsDark() {
		return fmt.Errorf("%w: piece on light square %v", ErrInvalidState, p)
	}
	b.set(p, c)
	return nil
}

// Apply returns the board after side plays m. The receiver is unchanged.
// Apply checks the move against the board only; whether m is legal for the
// turn is decided by GameState.ApplyMove.
func (b Board) Apply(side Side, m Move) (Board, error) {
	if err := m.validate(); err != nil {
		return b, err
	}
	piece := b.cell(m.From)
	if piece == Empty {
		return b, fmt.Errorf("%w: no piece on %v", ErrInvalidMove, m.From)
	}
	if !piece.Holds(side) {
		return b, fmt.Errorf("%w: piece on %v does not belong to %v", ErrInvalidMove, m.From, side)
	}

	// A chain may end on its own origin or on a square it captured.
	next := b
	next.set(m.From, Empty)
	for _, c := range m.Captured {
		if !next.cell(c).Holds(side.Opponent()) {
			return b, fmt.Errorf("%w: no %v piece to capture on %v", ErrInvalidMove, side.Opponent(), c)
		}
		next.set(c, Empty)
	}
	if next.cell(m.To) != Empty {
		return b, fmt.Errorf("%w: destination %v is occupied", ErrInvalidMove, m.To)
	}
	next.set(m.To, piece.promoted(m.To))
	return next, nil
}

// Play applies m in place without validation and returns a function that
// restores the board. Undo functions must be called in reverse order.
func (b *Board) Play(m Move) (undo func()) {
	piece := b.cell(m.From)
	captured := make([]Cell, len(m.Captured))
	for i, c := range m.Captured {
		captured[i] = b.cell(c)
		b.set(c, Empty)
	}
	b.set(m.From, Empty)
	b.set(m.To, piece.promoted(m.To))

	return func() {
		b.set(m.To, Empty)
		b.set(m.From, piece)
		for i, c := range m.Captured {
			b.set(c, captured[i])
		}
	}
}

// Count returns the number of pieces of side s.
func (b Board) Count(s Side) int {
	n := 0
	for row := range b {
		for _, c := range b[row] {
			if c.Holds(s) {
				n++
			}
		}
	}
	return n
}

// Pieces returns the positions of side s in row-major order.
func (b Board) Pieces(s Side) []Position {
	var positions []Position
	for row := range b {
		for col, c := range b[row] {
			if c.Holds(s) {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// Hash returns a canonical hash of the board with side to move.
func (b Board) Hash(toMove Side) StateHash {
	hasher := fnv.New64a()
	var encoded [Size * Size]byte
	for row := range b {
		for col, c := range b[row] {
			encoded[row*Size+col] = byte(c)
		}
	}
	hasher.Write(encoded[:])
	binary.Write(hasher, binary.LittleEndian, int8(toMove))
	return StateHash(hasher.Sum64())
}

// String draws the board one row per line, row 0 first.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		for _, c := range b[row] {
			sb.WriteRune(c.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
