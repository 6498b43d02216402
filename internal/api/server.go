// Package api serves strategy queries over HTTP and WebSocket.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/lox/deeppdcfr/internal/store"
	"github.com/lox/deeppdcfr/internal/strategy"
	"github.com/lox/deeppdcfr/sdk/sizing"
)

const maxBodySize = 1 << 20

// SolveLog records answered solves. *store.DB implements it.
type SolveLog interface {
	RecordSolve(ctx context.Context, rec store.SolveRecord) (int64, error)
	RecentSolves(ctx context.Context, limit int) ([]store.SolveRecord, error)
	Solve(ctx context.Context, id int64) (store.SolveRecord, bool, error)
}

// Options configures a Server. Zero values get defaults, except Provider
// which falls back to strategy.Heuristic.
type Options struct {
	Provider    strategy.Provider
	Store       SolveLog // optional
	Logger      *log.Logger
	Clock       quartz.Clock
	Version     string
	Sizes       *sizing.Config
	CORSOrigins []string
}

// Server is the HTTP front end. It implements http.Handler.
type Server struct {
	router   chi.Router
	provider strategy.Provider
	store    SolveLog
	logger   *log.Logger
	clock    quartz.Clock
	version  string
	sizes    sizing.Config
	upgrader websocket.Upgrader
}

// New builds the router.
func New(opts Options) *Server {
	s := &Server{
		provider: opts.Provider,
		store:    opts.Store,
		logger:   opts.Logger,
		clock:    opts.Clock,
		version:  opts.Version,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if s.provider == nil {
		s.provider = strategy.Heuristic{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.WithPrefix("api")
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.version == "" {
		s.version = "0.1.0"
	}
	if opts.Sizes != nil {
		s.sizes = *opts.Sizes
	} else {
		s.sizes = sizing.DefaultConfig()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/solves", s.handleRecentSolves)
		r.Get("/solves/{id}", s.handleGetSolve)
		r.Get("/ws", s.handleWebSocket)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: "no route for " + r.Method + " " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method_not_allowed", Message: r.Method + " is not allowed on " + r.URL.Path})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests logs one line per request with its status and latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", s.clock.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", ModelLoaded: true, Version: s.version})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, invalid("invalid request body: %v", err))
		return
	}

	resp, err := s.solve(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// solve answers one request and records it when a store is configured.
func (s *Server) solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	in, err := req.Input(s.sizes)
	if err != nil {
		return nil, err
	}

	start := s.clock.Now()
	res, err := strategy.Solve(ctx, s.provider, in)
	if err != nil {
		return nil, err
	}
	resp := newSolveResponse(in.Player, res)
	elapsed := s.clock.Since(start)

	s.logger.Info("Solve",
		"player", resp.Player,
		"board", resp.Board,
		"street", res.Node.Street,
		"actions", len(resp.Actions),
		"combos", resp.NumCombos,
		"duration", elapsed)

	if s.store != nil {
		rec := resp.record()
		rec.Duration = elapsed
		if _, err := s.store.RecordSolve(ctx, rec); err != nil {
			s.logger.Warn("Failed to record solve", "error", err)
		}
	}
	return resp, nil
}

func (s *Server) handleRecentSolves(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: "solve history is not enabled"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, invalid("limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	records, err := s.store.RecentSolves(r.Context(), store.ClampLimit(limit))
	if err != nil {
		s.writeError(w, fmt.Errorf("recent solves: %w", err))
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetSolve(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: "solve history is not enabled"})
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, invalid("invalid solve id %q", chi.URLParam(r, "id")))
		return
	}

	rec, ok, err := s.store.Solve(r.Context(), id)
	if err != nil {
		s.writeError(w, fmt.Errorf("solve %d: %w", id, err))
		return
	}
	if !ok {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: fmt.Sprintf("solve %d not found", id)})
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("Failed to write response", "error", err)
	}
}
