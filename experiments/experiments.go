package experiments

import (
	"context"
	"fmt"

	"dama/engine"
	"dama/experiments/metrics"
	"dama/meta"
	"dama/searcher"
	"dama/searcher/agent"

	"github.com/rs/zerolog/log"
)

const (
	NumGames    = 20 // Per match up
	PruneDepth  = 5
	DefaultRoot = "experiments"
)

type Options struct {
	Root     string // Output directory; files go to <Root>/<name>/<timestamp>/
	Games    int    // Per match up
	MaxTurns int
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.Games <= 0 {
		o.Games = NumGames
	}
	if o.MaxTurns <= 0 {
		o.MaxTurns = meta.MAX_TURNS
	}
	return o
}

// RunDepthExperiment pairs agents of increasing depth against a depth-1
// baseline to measure playing strength per ply.
func RunDepthExperiment(ctx context.Context, opts Options) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, TableSize: meta.TABLE_SIZE, Ordering: true, Iterative: true}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 2, TableSize: meta.TABLE_SIZE, Ordering: true, Iterative: true},
		{ID: 2, Depth: 3, TableSize: meta.TABLE_SIZE, Ordering: true, Iterative: true},
		{ID: 3, Depth: 4, TableSize: meta.TABLE_SIZE, Ordering: true, Iterative: true},
	}

	// Each matchup pairs the baseline agent against a deeper agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "depth", append(depthConfigs, baseline), matchUps, opts)
}

// RunPruningExperiment plays the same depth with each search enhancement
// switched on in turn against a random opponent, to compare node counts.
func RunPruningExperiment(ctx context.Context, opts Options) (string, error) {
	opponent := metrics.AgentConfig{ID: 0, Random: true}
	pruningConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: PruneDepth}, // Plain alpha-beta
		{ID: 2, Depth: PruneDepth, Ordering: true},
		{ID: 3, Depth: PruneDepth, Ordering: true, Iterative: true},
		{ID: 4, Depth: PruneDepth, Ordering: true, Iterative: true, TableSize: meta.TABLE_SIZE},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range pruningConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, opponent})
	}

	return runExperiment(ctx, "pruning", append(pruningConfigs, opponent), matchUps, opts)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) (string, error) {
	opts = opts.withDefaults()
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < opts.Games; i++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			// Alternate colours so neither agent always moves first
			light, dark := matchup[0], matchup[1]
			if i%2 == 1 {
				light, dark = dark, light
			}

			count++
			winner, gameMetric, moveMetrics := runGame(ctx, light, dark, uint64(count), opts.MaxTurns)
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     light.ID,
				Agent2:     dark.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return writeResults(opts.Root, name, configs, gameRecords, moveRecords)
}

func writeResults(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, light, dark metrics.AgentConfig, seed uint64, maxTurns int) (string, metrics.GameMetric, []metrics.MoveMetric) {
	agents := []agent.Agent{
		createAgent(light, seed),
		createAgent(dark, seed+1),
	}
	e := engine.LocalEngine(agents, engine.WithMaxTurns(maxTurns))
	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}
	s := searcher.NewAlphaBeta(
		searcher.WithMoveOrdering(config.Ordering),
		searcher.WithIterativeDeepening(config.Iterative),
		searcher.WithTranspositionTable(config.TableSize),
		searcher.WithMetrics(),
	)
	return agent.NewSearchAgent(s, config.Depth, config.Budget)
}
