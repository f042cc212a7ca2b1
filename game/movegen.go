package game

type direction struct {
	row, col int
}

// Fixed generation order; it is also the engine's tie-break order.
var (
	lightManDirections = []direction{{-1, -1}, {-1, 1}}
	darkManDirections  = []direction{{1, -1}, {1, 1}}
	kingDirections     = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

func directions(c Cell) []direction {
	switch c {
	case LightMan:
		return lightManDirections
	case DarkMan:
		return darkManDirections
	case LightKing, DarkKing:
		return kingDirections
	}
	return nil
}

// LegalMoves returns every legal move of side on b. If any capture is
// available only captures are returned, each one a maximal jump chain.
func LegalMoves(b Board, side Side) []Move {
	captures := captureMoves(&b, side)
	if len(captures) > 0 {
		return captures
	}
	return simpleMoves(&b, side)
}

// HasCapture reports whether side has at least one capture available.
func HasCapture(b Board, side Side) bool {
	for _, from := range b.Pieces(side) {
		piece := b.cell(from)
		for _, d := range directions(piece) {
			if canJump(&b, side, from, d) {
				return true
			}
		}
	}
	return false
}

func simpleMoves(b *Board, side Side) []Move {
	var moves []Move
	for _, from := range b.Pieces(side) {
		for _, d := range directions(b.cell(from)) {
			to := from.add(d)
			if to.InBounds() && b.cell(to) == Empty {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// captureMoves works on b in place and leaves it as it found it.
func captureMoves(b *Board, side Side) []Move {
	var moves []Move
	for _, from := range b.Pieces(side) {
		piece := b.cell(from)
		b.set(from, Empty)
		moves = jumpChains(b, side, piece, from, from, nil, moves)
		b.set(from, piece)
	}
	return moves
}

// jumpChains extends the chain that started at origin and now stands on at.
// Captured pieces are lifted off the board while the chain is explored.
func jumpChains(b *Board, side Side, piece Cell, origin, at Position, captured []Position, moves []Move) []Move {
	extended := false
	for _, d := range directions(piece) {
		if !canJump(b, side, at, d) {
			continue
		}
		over, landing := at.add(d), at.add(d).add(d)
		taken := b.cell(over)
		b.set(over, Empty)

		chain := make([]Position, len(captured), len(captured)+1)
		copy(chain, captured)
		chain = append(chain, over)
		moves = jumpChains(b, side, piece, origin, landing, chain, moves)

		b.set(over, taken)
		extended = true
	}
	if !extended && len(captured) > 0 {
		moves = append(moves, Move{From: origin, To: at, Captured: captured})
	}
	return moves
}

func canJump(b *Board, side Side, at Position, d direction) bool {
	over := at.add(d)
	landing := over.add(d)
	if !landing.InBounds() {
		return false
	}
	return b.cell(over).Holds(side.Opponent()) && b.cell(landing) == Empty
}
