package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dama/config"
	"dama/engine"
	"dama/experiments"
	"dama/searcher/agent"
	"dama/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "play", "One of play, serve, experiment")
	opponent := flag.String("opponent", "search", "Dark player in play mode: search, random, or an agent server URL")
	resume := flag.String("resume", "", "Game id to resume from the store in play mode")
	experiment := flag.String("experiment", "depth", "Experiment to run: depth or pruning")
	games := flag.Int("games", experiments.NumGames, "Games per match up in experiment mode")
	seed := flag.Uint64("seed", 1, "Seed of the random opponent")
	flag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "play":
		err = play(ctx, cfg, *opponent, *resume, *seed)
	case "serve":
		err = serve(ctx, cfg)
	case "experiment":
		err = runExperiment(ctx, *experiment, *games, cfg.Engine.MaxTurns)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	client, err := store.Connect(ctx, cfg.Redis.Addr)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRedisStore(client, cfg.Redis.TTL), func() { client.Close() }, nil
}

func play(ctx context.Context, cfg *config.Config, opponent, resume string, seed uint64) error {
	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	light := agent.NewSearchAgent(cfg.NewSearcher(), cfg.Search.Depth, cfg.Search.Budget)
	var dark agent.Agent
	switch opponent {
	case "search":
		dark = agent.NewSearchAgent(cfg.NewSearcher(), cfg.Search.Depth, cfg.Search.Budget)
	case "random":
		dark = agent.NewRandomAgent(seed)
	default:
		dark = agent.NewRemoteAgent(opponent, cfg.Search.Depth)
	}

	options := []engine.Option{engine.WithMaxTurns(cfg.Engine.MaxTurns), engine.WithStore(s)}
	if resume != "" {
		state, err := s.Load(ctx, resume)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved game %q", resume)
		}
		if err != nil {
			return err
		}
		options = append(options, engine.WithState(state), engine.WithID(resume))
	}

	e := engine.LocalEngine([]agent.Agent{light, dark}, options...)
	winner, gameMetric, _ := e.Run(ctx)
	fmt.Println(e.State)
	if winner == "" {
		winner = "none"
	}
	fmt.Printf("game %s: winner %s after %d moves in %v (%d fallback moves)\n",
		gameMetric.GameID, winner, gameMetric.TotalMoves, gameMetric.Duration, gameMetric.FallbackMoves)
	return nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	server := agent.NewServer(cfg.NewSearcher, cfg.Evaluator().EvalFunc(), cfg.Search.Depth, cfg.Search.Budget)
	err := server.ListenAndServe(ctx, cfg.Server.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func runExperiment(ctx context.Context, name string, games, maxTurns int) error {
	opts := experiments.Options{Games: games, MaxTurns: maxTurns}
	var err error
	switch name {
	case "depth":
		_, err = experiments.RunDepthExperiment(ctx, opts)
	case "pruning":
		_, err = experiments.RunPruningExperiment(ctx, opts)
	default:
		err = fmt.Errorf("unknown experiment %q", name)
	}
	return err
}
