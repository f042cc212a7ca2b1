package engine

import (
	"context"

	"dama/experiments/metrics"
)

type Engine interface {
	// Run plays a game till there's a winner or the turn cap is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
