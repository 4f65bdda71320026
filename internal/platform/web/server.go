// Package web serves a read-only JSON view of the scoreboard and run log.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

const (
	defaultLimit   = 10
	maxLimit       = 100
	requestTimeout = 10 * time.Second
)

// Server exposes the score store over HTTP.
type Server struct {
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server reading from store. A nil logger discards output.
func NewServer(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: store, logger: logger}
}

// Routes builds the router with its middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/games", s.handleListGames)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Use(s.requireGame)
		r.Get("/scores", s.handleScores)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/runs/recent", s.handleRecentRuns)
	r.Get("/runs/{runID}", s.handleRun)

	return r
}

// Start listens on addr and serves until Shutdown. It returns once the
// listener is bound; serve errors are logged.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", addr, err)
	}
	s.http = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("Starting web scoreboard", "addr", ln.Addr().String())

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server stopped", "err", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !registry.Exists(id) {
			writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown game %q", id))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	infos := registry.List()
	resp := GamesResponse{Games: make([]GameResponse, 0, len(infos))}
	for _, info := range infos {
		g := GameResponse{ID: info.ID, Title: info.Title, Controls: info.Controls}
		if high, err := s.store.HighScore(info.ID); err == nil {
			g.HighScore = high
		}
		resp.Games = append(resp.Games, g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	entries, err := s.store.TopScores(id, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := ScoresResponse{GameID: id, Scores: make([]ScoreResponse, 0, len(entries))}
	for i, e := range entries {
		resp.Scores = append(resp.Scores, ScoreResponse{Rank: i + 1, Score: e.Score, RunID: e.RunID, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetGameStats(chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	resp := StatsResponse{
		GameID:     stats.GameID,
		Games:      stats.GamesCount,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		TotalScore: stats.TotalScore,
	}
	if !stats.LastPlayed.IsZero() {
		last := stats.LastPlayed
		resp.LastPlayed = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	game := r.URL.Query().Get("game")
	if game != "" && !registry.Exists(game) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown game %q", game))
		return
	}

	runs, err := s.store.RecentRuns(game, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	resp := RunsResponse{Runs: make([]RunResponse, 0, len(runs))}
	for _, rr := range runs {
		resp.Runs = append(resp.Runs, newRunResponse(rr))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	rec, err := s.store.RunByID(runID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if rec == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("run %q not found", runID))
		return
	}
	writeJSON(w, http.StatusOK, newRunResponse(*rec))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal error")
}

// parseLimit reads ?limit=, defaulting to 10 and capping at 100.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
		return 0, false
	}
	return min(n, maxLimit), true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away; nothing left to report to
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, RequestID: middleware.GetReqID(r.Context())})
}
