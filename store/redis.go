package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dama/game"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "dama:game:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore stores snapshots under dama:game:<id>. A zero ttl keeps them
// until deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	log.Info().Msgf("connected to redis at %s", addr)
	return client, nil
}

func (s *redisStore) Save(ctx context.Context, id string, state game.GameState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err()
}

func (s *redisStore) Load(ctx context.Context, id string) (game.GameState, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.GameState{}, ErrNotFound
	}
	if err != nil {
		return game.GameState{}, err
	}
	return Decode(data)
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
