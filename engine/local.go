package engine

import (
	"context"
	"fmt"
	"time"

	"dama/experiments/metrics"
	"dama/game"
	"dama/meta"
	"dama/searcher/agent"
	"dama/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local plays a game between two in-process (or remote) agents. Agents[0]
// plays Light and Agents[1] plays Dark.
type Local struct {
	ID       string
	State    game.GameState
	Agents   []agent.Agent
	maxTurns int
	store    store.Store
}

var _ Engine = (*Local)(nil)

// WithState resumes a game from state instead of the opening.
func WithState(state game.GameState) Option {
	return func(e *Local) {
		e.State = state
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithStore saves the state after every move under the game id.
func WithStore(s store.Store) Option {
	return func(e *Local) {
		e.store = s
	}
}

func WithID(id string) Option {
	return func(e *Local) {
		if id != "" {
			e.ID = id
		}
	}
}

func LocalEngine(agents []agent.Agent, options ...Option) *Local {
	if len(agents) != 2 {
		panic(fmt.Sprintf("need exactly two agents, got %d", len(agents)))
	}
	e := &Local{ // Default values
		ID:       uuid.New().String(),
		State:    game.NewGame(),
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until the game is over, the turn cap is reached or ctx is done.
// An agent error or illegal answer is replaced by the first legal move. A move
// found after ctx is done is discarded.
func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		GameID:       e.ID,
		StartingSide: e.State.Turn().String(),
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("game", e.ID).Msgf("%v is starting", e.State.Turn())

	turns := 0
	for !e.State.Terminal() && turns < e.maxTurns && ctx.Err() == nil {
		side := e.State.Turn()
		move, searchMetric, err := e.agentFor(side).FindMove(ctx, e.State)
		if ctx.Err() != nil {
			log.Info().Str("game", e.ID).Err(ctx.Err()).Msgf("stopped while %v was thinking", side)
			break
		}

		next, err := e.play(move, err)
		if err != nil {
			gameMetric.FallbackMoves++
			fallback := e.State.LegalMoves()[0]
			log.Warn().Str("game", e.ID).Err(err).Msgf("%v answered %v, playing %v instead", side, move, fallback)
			if next, err = e.State.ApplyMove(fallback); err != nil {
				panic(fmt.Sprintf("first legal move %v was rejected: %v", fallback, err))
			}
			move = fallback
		}

		turns++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turns,
			Side:         side.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Str("game", e.ID).Msgf("turn %d: %v plays %v", turns, side, move)

		e.State = next
		if e.store != nil {
			if err := e.store.Save(ctx, e.ID, e.State); err != nil {
				log.Error().Str("game", e.ID).Err(err).Msg("failed to save game")
			}
		}
	}

	winner := ""
	if side, ok := e.State.Winner(); ok {
		winner = side.String()
		log.Info().Str("game", e.ID).Msgf("game ended after %d turns, winner: %s", turns, winner)
	} else {
		log.Info().Str("game", e.ID).Msgf("stopped after %d turns without a winner", turns)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turns
	return winner, gameMetric, moveMetrics
}

func (e *Local) agentFor(side game.Side) agent.Agent {
	if side == game.Light {
		return e.Agents[0]
	}
	return e.Agents[1]
}

func (e *Local) play(move game.Move, findErr error) (game.GameState, error) {
	if findErr != nil {
		return e.State, findErr
	}
	return e.State.ApplyMove(move)
}
