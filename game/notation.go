package game

import "fmt"

// ParseBoard builds a board from eight rows of eight runes, row 0 first
// ('.' empty, 'l'/'L' light man/king, 'd'/'D' dark man/king). The result is
// checked with ValidateBoard.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidState, Size, len(rows))
	}
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidState, row, len(runes))
		}
		for col, r := range runes {
			c, ok := CellFromRune(r)
			if !ok {
				return b, fmt.Errorf("%w: unknown cell %q at %d,%d", ErrInvalidState, r, row, col)
			}
			if err := b.Put(Position{Row: row, Col: col}, c); err != nil {
				return b, err
			}
		}
	}
	if err := ValidateBoard(b); err != nil {
		return b, err
	}
	return b, nil
}

// Rows is the inverse of ParseBoard.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for row := range b {
		line := make([]rune, Size)
		for col, c := range b[row] {
			line[col] = c.Rune()
		}
		rows[row] = string(line)
	}
	return rows
}
