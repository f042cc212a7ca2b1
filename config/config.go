package config

import (
	"fmt"
	"strings"
	"time"

	"dama/game"
	"dama/meta"
	"dama/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Search   SearchConfig `mapstructure:"search"`
	Weights  game.Weights `mapstructure:"weights"`
	Server   ServerConfig `mapstructure:"server"`
	Redis    RedisConfig  `mapstructure:"redis"`
	Engine   EngineConfig `mapstructure:"engine"`
}

type SearchConfig struct {
	Depth     int           `mapstructure:"depth"`
	Budget    time.Duration `mapstructure:"budget"`
	TableSize int           `mapstructure:"table_size"`
	Ordering  bool          `mapstructure:"ordering"`
	Iterative bool          `mapstructure:"iterative"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig enables the redis game store when Addr is set, e.g.
// "localhost:6379". It is empty by default.
type RedisConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type EngineConfig struct {
	MaxTurns int `mapstructure:"max_turns"`
}

// Setup reads the config file at cfgPath, if any, over the defaults. Every
// key can be overridden from the environment: search.depth is DAMA_SEARCH_DEPTH.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DAMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	w := game.DefaultWeights()
	v.SetDefault("log_level", meta.LOG_LEVEL)
	v.SetDefault("search.depth", meta.SEARCH_DEPTH)
	v.SetDefault("search.budget", meta.SEARCH_BUDGET)
	v.SetDefault("search.table_size", meta.TABLE_SIZE)
	v.SetDefault("search.ordering", true)
	v.SetDefault("search.iterative", true)
	v.SetDefault("weights.man", w.Man)
	v.SetDefault("weights.king", w.King)
	v.SetDefault("weights.advancement", w.Advancement)
	v.SetDefault("weights.center", w.Center)
	v.SetDefault("weights.mobility", w.Mobility)
	v.SetDefault("server.addr", meta.SERVER_ADDR)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", meta.REDIS_TTL)
	v.SetDefault("engine.max_turns", meta.MAX_TURNS)
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Search.Depth < 1 || c.Search.Depth > searcher.MaxDepth {
		return fmt.Errorf("search.depth must be between 1 and %d, got %d", searcher.MaxDepth, c.Search.Depth)
	}
	if c.Search.Budget < 0 || c.Search.TableSize < 0 {
		return fmt.Errorf("search.budget and search.table_size must not be negative")
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.Engine.MaxTurns <= 0 {
		return fmt.Errorf("engine.max_turns must be positive, got %d", c.Engine.MaxTurns)
	}
	return nil
}

// Evaluator is built from the validated weights.
func (c *Config) Evaluator() game.Evaluator {
	e, err := game.NewEvaluator(c.Weights)
	if err != nil {
		panic(fmt.Sprintf("weights were not validated: %v", err))
	}
	return e
}

// SearchOptions configures a searcher from the search and weights sections.
func (c *Config) SearchOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithEvaluator(c.Evaluator().EvalFunc()),
		searcher.WithMoveOrdering(c.Search.Ordering),
		searcher.WithIterativeDeepening(c.Search.Iterative),
		searcher.WithTranspositionTable(c.Search.TableSize),
		searcher.WithMetrics(),
	}
}

func (c *Config) NewSearcher() *searcher.AlphaBeta {
	return searcher.NewAlphaBeta(c.SearchOptions()...)
}
