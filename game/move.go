package game

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns of the board.
const Size = 8

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// IsDark reports whether p is a playable square.
func (p Position) IsDark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) add(d direction) Position {
	return Position{Row: p.Row + d.row, Col: p.Col + d.col}
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Move is a simple step (no captures) or a capture chain. Captured lists the
// jumped pieces in the order they are taken.
type Move struct {
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Captured []Position `json:"captured,omitempty"`
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Equal(other Move) bool {
	if m.From != other.From || m.To != other.To || len(m.Captured) != len(other.Captured) {
		return false
	}
	for i, p := range m.Captured {
		if other.Captured[i] != p {
			return false
		}
	}
	return true
}

// String renders "5,2-4,3" for steps and "4,3x2,1" for captures. Multi-jumps
// list every landing square: "5,0x3,2x1,4".
func (m Move) String() string {
	if !m.IsCapture() {
		return m.From.String() + "-" + m.To.String()
	}
	var sb strings.Builder
	sb.WriteString(m.From.String())
	at := m.From
	for _, c := range m.Captured {
		landing := Position{Row: 2*c.Row - at.Row, Col: 2*c.Col - at.Col}
		sb.WriteString("x")
		sb.WriteString(landing.String())
		at = landing
	}
	return sb.String()
}

func (m Move) validate() error {
	if !m.From.InBounds() || !m.To.InBounds() {
		return fmt.Errorf("%w: move %v", ErrOutOfBounds, m)
	}
	for _, c := range m.Captured {
		if !c.InBounds() {
			return fmt.Errorf("%w: captured %v", ErrOutOfBounds, c)
		}
	}
	return nil
}

// IndexOf returns the index of m in moves, or -1.
func IndexOf(moves []Move, m Move) int {
	for i, candidate := range moves {
		if candidate.Equal(m) {
			return i
		}
	}
	return -1
}
