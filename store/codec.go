package store

import (
	"encoding/json"
	"fmt"

	"dama/game"
)

// Snapshot is the persisted and wire form of a game state. Rows use one rune
// per square: '.' empty, 'l'/'L' light man/king, 'd'/'D' dark man/king.
type Snapshot struct {
	Board []string `json:"board"`
	Turn  string   `json:"turn"`
	Ply   int      `json:"ply"`
}

func SnapshotOf(gs game.GameState) Snapshot {
	return Snapshot{
		Board: gs.Board().Rows(),
		Turn:  gs.Turn().String(),
		Ply:   gs.Ply(),
	}
}

// State rebuilds the game state, validating the board before play resumes.
// Terminal status is recomputed from the position.
func (s Snapshot) State() (game.GameState, error) {
	board, err := game.ParseBoard(s.Board)
	if err != nil {
		return game.GameState{}, err
	}
	turn, err := game.ParseSide(s.Turn)
	if err != nil {
		return game.GameState{}, err
	}
	if s.Ply < 0 {
		return game.GameState{}, fmt.Errorf("%w: negative ply %d", game.ErrInvalidState, s.Ply)
	}
	gs, err := game.NewGameState(board, turn)
	if err != nil {
		return game.GameState{}, err
	}
	return gs.WithPly(s.Ply), nil
}

func Encode(gs game.GameState) ([]byte, error) {
	return json.Marshal(SnapshotOf(gs))
}

func Decode(data []byte) (game.GameState, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return game.GameState{}, fmt.Errorf("%w: %v", game.ErrInvalidState, err)
	}
	return s.State()
}
