package game

import "fmt"

// Weights configures the evaluation terms. All terms are per piece or per
// move; they are summed for the side being scored and subtracted for its
// opponent.
type Weights struct {
	Man         int `mapstructure:"man"`
	King        int `mapstructure:"king"`
	Advancement int `mapstructure:"advancement"`
	Center      int `mapstructure:"center"`
	Mobility    int `mapstructure:"mobility"`
}

func DefaultWeights() Weights {
	return Weights{
		Man:         100,
		King:        250,
		Advancement: 3,
		Center:      2,
		Mobility:    4,
	}
}

// Validate requires non-negative terms and a King worth two to three Men.
func (w Weights) Validate() error {
	if w.Man <= 0 {
		return fmt.Errorf("man weight must be positive, got %d", w.Man)
	}
	if w.Advancement < 0 || w.Center < 0 || w.Mobility < 0 {
		return fmt.Errorf("positional weights must not be negative: %+v", w)
	}
	if w.King < 2*w.Man || w.King > 3*w.Man {
		return fmt.Errorf("king weight %d must be between 2x and 3x the man weight %d", w.King, w.Man)
	}
	return nil
}

type Evaluator struct {
	weights Weights
}

func NewEvaluator(w Weights) (Evaluator, error) {
	if err := w.Validate(); err != nil {
		return Evaluator{}, err
	}
	return Evaluator{weights: w}, nil
}

var defaultEvaluator = Evaluator{weights: DefaultWeights()}

// Evaluate scores b for side with the default weights.
func Evaluate(b Board, side Side) int {
	return defaultEvaluator.Evaluate(b, side)
}

// Evaluate returns material + advancement + central control + mobility from
// side's perspective.
func (e Evaluator) Evaluate(b Board, side Side) int {
	score := 0
	for row := range b {
		for col, c := range b[row] {
			p, ok := c.Piece()
			if !ok {
				continue
			}
			value := e.pieceScore(p, Position{Row: row, Col: col})
			if p.Side == side {
				score += value
			} else {
				score -= value
			}
		}
	}
	if e.weights.Mobility != 0 {
		mobility := len(LegalMoves(b, side)) - len(LegalMoves(b, side.Opponent()))
		score += e.weights.Mobility * mobility
	}
	return score
}

// EvalFunc adapts the evaluator to the search.
func (e Evaluator) EvalFunc() EvalFunc {
	return e.Evaluate
}

func (e Evaluator) pieceScore(p Piece, at Position) int {
	value := e.weights.Center * centrality(at)
	if p.Rank == King {
		return value + e.weights.King
	}
	return value + e.weights.Man + e.weights.Advancement*advancement(p.Side, at)
}

// advancement is the number of rows a Man has progressed from its own back row.
func advancement(s Side, at Position) int {
	if s == Light {
		return Size - 1 - at.Row
	}
	return at.Row
}

// centrality is 6 on the four centre squares and 0 in the corners: the
// Manhattan distance from the centre, inverted. Coordinates are doubled so
// the centre (3.5, 3.5) stays integral.
func centrality(at Position) int {
	d := abs(2*at.Row-(Size-1)) + abs(2*at.Col-(Size-1))
	return (2*(Size-1) - d) / 2
}

// Material is the material balance for side with the default weights; it is
// the cheap heuristic used to order moves.
func Material(b Board, side Side) int {
	w := defaultEvaluator.weights
	score := 0
	for row := range b {
		for _, c := range b[row] {
			p, ok := c.Piece()
			if !ok {
				continue
			}
			value := w.Man
			if p.Rank == King {
				value = w.King
			}
			if p.Side == side {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}

// MaterialGain is the change in Material for the mover when m is played on b:
// the captured pieces plus a promotion bonus.
func MaterialGain(b Board, m Move) int {
	w := defaultEvaluator.weights
	gain := 0
	for _, c := range m.Captured {
		if b.cell(c).IsKing() {
			gain += w.King
		} else {
			gain += w.Man
		}
	}
	if piece := b.cell(m.From); piece != Empty && piece.promoted(m.To) != piece {
		gain += w.King - w.Man
	}
	return gain
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
