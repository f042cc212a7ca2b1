package agent

import (
	"time"

	"dama/game"
	"dama/store"
)

type findMoveRequest struct {
	State store.Snapshot `json:"state"`
	Depth int            `json:"depth,omitempty"`
}

type findMoveResponse struct {
	Move      game.Move     `json:"move"`
	Found     bool          `json:"found"`
	Score     int           `json:"score"`
	Depth     int           `json:"depth"`
	Cancelled bool          `json:"cancelled"`
	Nodes     int           `json:"nodes"`
	Duration  time.Duration `json:"duration"`
}

type stateRequest struct {
	State store.Snapshot `json:"state"`
}

type legalMovesResponse struct {
	Moves []game.Move `json:"moves"`
}

type evaluateRequest struct {
	State store.Snapshot `json:"state"`
	Side  string         `json:"side,omitempty"` // Defaults to the side to move
}

type evaluateResponse struct {
	Score int `json:"score"`
}

type applyMoveRequest struct {
	State store.Snapshot `json:"state"`
	Move  game.Move      `json:"move"`
}

type applyMoveResponse struct {
	State    store.Snapshot `json:"state"`
	Terminal bool           `json:"terminal"`
	Winner   string         `json:"winner,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
