package game

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrIllegalMove     = errors.New("illegal move")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidState    = errors.New("invalid game state")
	ErrSearchCancelled = errors.New("search cancelled")
)
