package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dama/game"
	"dama/meta"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dama.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSetup(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Setup("")
		require.NoError(t, err)
		require.Equal(t, meta.SEARCH_DEPTH, cfg.Search.Depth)
		require.Equal(t, meta.SEARCH_BUDGET, cfg.Search.Budget)
		require.True(t, cfg.Search.Ordering)
		require.Equal(t, game.DefaultWeights(), cfg.Weights)
		require.Equal(t, meta.MAX_TURNS, cfg.Engine.MaxTurns)
		require.Empty(t, cfg.Redis.Addr)
		require.Len(t, cfg.SearchOptions(), 5)
	})

	t.Run("reading a yaml file", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
search:
  depth: 4
  budget: 250ms
  table_size: 0
  iterative: false
weights:
  king: 300
redis:
  addr: localhost:6379
  ttl: 1h
engine:
  max_turns: 120
`)
		cfg, err := Setup(path)
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 4, cfg.Search.Depth)
		require.Equal(t, 250*time.Millisecond, cfg.Search.Budget)
		require.Zero(t, cfg.Search.TableSize)
		require.False(t, cfg.Search.Iterative)
		require.True(t, cfg.Search.Ordering, "Unset keys keep their defaults")
		require.Equal(t, 300, cfg.Weights.King)
		require.Equal(t, 100, cfg.Weights.Man)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Equal(t, time.Hour, cfg.Redis.TTL)
		require.Equal(t, 120, cfg.Engine.MaxTurns)
	})

	t.Run("overriding from the environment", func(t *testing.T) {
		t.Setenv("DAMA_SEARCH_DEPTH", "2")
		t.Setenv("DAMA_SERVER_ADDR", ":9000")
		cfg, err := Setup(writeConfig(t, "search:\n  depth: 4\n"))
		require.NoError(t, err)
		require.Equal(t, 2, cfg.Search.Depth)
		require.Equal(t, ":9000", cfg.Server.Addr)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		for name, content := range map[string]string{
			"depth":     "search:\n  depth: 0\n",
			"deep":      "search:\n  depth: 65\n",
			"weights":   "weights:\n  king: 100\n",
			"log level": "log_level: loud\n",
			"max turns": "engine:\n  max_turns: 0\n",
		} {
			_, err := Setup(writeConfig(t, content))
			require.Error(t, err, name)
		}
		_, err := Setup(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("building an evaluator from the weights", func(t *testing.T) {
		cfg, err := Setup(writeConfig(t, "weights:\n  mobility: 0\n  center: 0\n  advancement: 0\n"))
		require.NoError(t, err)
		b := game.NewBoard()
		require.Equal(t, 0, cfg.Evaluator().Evaluate(b, game.Light))
		require.NotNil(t, cfg.NewSearcher())
	})
}
