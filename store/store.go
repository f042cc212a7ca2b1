package store

import (
	"context"
	"errors"
	"sync"

	"dama/game"
)

var ErrNotFound = errors.New("game not found")

// Store persists game states by game id.
type Store interface {
	Save(ctx context.Context, id string, state game.GameState) error
	Load(ctx context.Context, id string) (game.GameState, error)
	Delete(ctx context.Context, id string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemoryStore keeps encoded snapshots in process, so loads go through the
// same validation as any other store.
func NewMemoryStore() Store {
	return &memoryStore{games: make(map[string][]byte)}
}

func (s *memoryStore) Save(_ context.Context, id string, state game.GameState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = data
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (game.GameState, error) {
	s.mu.RLock()
	data, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return game.GameState{}, ErrNotFound
	}
	return Decode(data)
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}
