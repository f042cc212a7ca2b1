package game

import "fmt"

// Side is one of the two players. Light starts on rows 5-7 and moves toward
// row 0, Dark starts on rows 0-2 and moves toward row 7.
type Side int8

const (
	Light Side = iota
	Dark
)

func (s Side) Opponent() Side {
	if s == Light {
		return Dark
	}
	return Light
}

func (s Side) String() string {
	switch s {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

// forward is the row delta of a Man's step.
func (s Side) forward() int {
	if s == Light {
		return -1
	}
	return 1
}

// PromotionRow is the row on which a Man of this side becomes a King.
func (s Side) PromotionRow() int {
	if s == Light {
		return 0
	}
	return Size - 1
}

// ParseSide is the inverse of Side.String.
func ParseSide(s string) (Side, error) {
	switch s {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: unknown side %q", ErrInvalidState, s)
}

type Rank int8

const (
	Man Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "man"
}

type Piece struct {
	Side Side
	Rank Rank
}

// Cell is the content of one square.
type Cell uint8

const (
	Empty Cell = iota
	LightMan
	LightKing
	DarkMan
	DarkKing
)

// CellOf returns the cell holding p.
func CellOf(p Piece) Cell {
	switch {
	case p.Side == Light && p.Rank == Man:
		return LightMan
	case p.Side == Light:
		return LightKing
	case p.Rank == Man:
		return DarkMan
	default:
		return DarkKing
	}
}

// Piece returns the piece on the cell, ok is false for an empty cell.
func (c Cell) Piece() (p Piece, ok bool) {
	switch c {
	case LightMan:
		return Piece{Light, Man}, true
	case LightKing:
		return Piece{Light, King}, true
	case DarkMan:
		return Piece{Dark, Man}, true
	case DarkKing:
		return Piece{Dark, King}, true
	}
	return Piece{}, false
}

// Holds reports whether the cell holds a piece of side s.
func (c Cell) Holds(s Side) bool {
	p, ok := c.Piece()
	return ok && p.Side == s
}

func (c Cell) IsKing() bool {
	return c == LightKing || c == DarkKing
}

// promoted returns the cell after the piece lands on to.
func (c Cell) promoted(to Position) Cell {
	switch {
	case c == LightMan && to.Row == Light.PromotionRow():
		return LightKing
	case c == DarkMan && to.Row == Dark.PromotionRow():
		return DarkKing
	}
	return c
}

// Rune is the single-character notation used by String and the store codec.
func (c Cell) Rune() rune {
	switch c {
	case LightMan:
		return 'l'
	case LightKing:
		return 'L'
	case DarkMan:
		return 'd'
	case DarkKing:
		return 'D'
	}
	return '.'
}

// CellFromRune is the inverse of Cell.Rune.
func CellFromRune(r rune) (Cell, bool) {
	switch r {
	case '.':
		return Empty, true
	case 'l':
		return LightMan, true
	case 'L':
		return LightKing, true
	case 'd':
		return DarkMan, true
	case 'D':
		return DarkKing, true
	}
	return Empty, false
}

type StateHash uint64

// EvalFunc scores a board for a side; positive favours that side.
// Implementations must be pure.
type EvalFunc func(b Board, side Side) int
