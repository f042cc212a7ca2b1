package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dama/game"
	"dama/searcher"
	"dama/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Server exposes the rule engine and the search over HTTP.
type Server struct {
	newSearcher func() *searcher.AlphaBeta
	evaluate    game.EvalFunc
	depth       int
	budget      time.Duration
	router      chi.Router
}

// NewServer builds the router. Each search request gets its own searcher from
// newSearcher, so concurrent requests never share search state.
func NewServer(newSearcher func() *searcher.AlphaBeta, evaluate game.EvalFunc, depth int, budget time.Duration) *Server {
	if evaluate == nil {
		evaluate = game.Evaluate
	}
	s := &Server{
		newSearcher: newSearcher,
		evaluate:    evaluate,
		depth:       depth,
		budget:      budget,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/findmove", s.handleFindMove)
	r.Post("/legalmoves", s.handleLegalMoves)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/applymove", s.handleApplyMove)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}
	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req findMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	state, err := req.State.State()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Requests may search shallower than the server depth, never deeper.
	depth := req.Depth
	if depth == 0 || depth > s.depth {
		depth = s.depth
	}

	ctx := r.Context()
	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}
	outcome := <-s.newSearcher().Go(ctx, state.Board(), state.Turn(), depth)
	if errors.Is(outcome.Err, game.ErrInvalidState) {
		writeError(w, http.StatusBadRequest, outcome.Err.Error())
		return
	}
	if outcome.Err != nil {
		writeError(w, http.StatusServiceUnavailable, outcome.Err.Error())
		return
	}

	writeJSON(w, http.StatusOK, findMoveResponse{
		Move:      outcome.Move,
		Found:     outcome.Found,
		Score:     outcome.Score,
		Depth:     outcome.Depth,
		Cancelled: outcome.Cancelled,
		Nodes:     outcome.Metrics.Nodes,
		Duration:  outcome.Metrics.Duration,
	})
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	state, err := req.State.State()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	moves := state.LegalMoves()
	if moves == nil {
		moves = []game.Move{}
	}
	writeJSON(w, http.StatusOK, legalMovesResponse{Moves: moves})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	state, err := req.State.State()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	side := state.Turn()
	if req.Side != "" {
		if side, err = game.ParseSide(req.Side); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, evaluateResponse{Score: s.evaluate(state.Board(), side)})
}

func (s *Server) handleApplyMove(w http.ResponseWriter, r *http.Request) {
	var req applyMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	state, err := req.State.State()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	next, err := game.Apply(state, req.Move)
	switch {
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := applyMoveResponse{State: store.SnapshotOf(next), Terminal: next.Terminal()}
	if winner, ok := next.Winner(); ok {
		resp.Winner = winner.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
