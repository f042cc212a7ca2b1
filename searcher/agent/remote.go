package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dama/experiments/metrics"
	"dama/game"
	"dama/store"
)

type remoteAgent struct {
	url    string
	depth  int
	client *http.Client
}

// NewRemoteAgent asks the agent server at url for moves. A zero depth leaves
// the choice to the server.
func NewRemoteAgent(url string, depth int) Agent {
	return remoteAgent{
		url:    strings.TrimSuffix(url, "/"),
		depth:  depth,
		client: &http.Client{Timeout: time.Minute},
	}
}

func (a remoteAgent) FindMove(ctx context.Context, state game.GameState) (game.Move, metrics.SearchMetric, error) {
	body, err := json.Marshal(findMoveRequest{State: store.SnapshotOf(state), Depth: a.depth})
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("requesting move from %s: %w", a.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}
	var found findMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("decoding move: %w", err)
	}

	metric := metrics.SearchMetric{
		MaxDepth:  a.depth,
		Depth:     found.Depth,
		Duration:  found.Duration,
		Nodes:     found.Nodes,
		Cancelled: found.Cancelled,
	}
	if !found.Found {
		return game.Move{}, metric, fmt.Errorf("%w: no legal move for %v", game.ErrGameOver, state.Turn())
	}
	return found.Move, metric, nil
}
