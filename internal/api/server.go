package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/extractor"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/store"
)

// DecisionReader is the read side of the decision store.
type DecisionReader interface {
	LatestMode(ctx context.Context, ownerUUID uuid.UUID) (mode.Mode, error)
	ListDecisions(ctx context.Context, ownerUUID uuid.UUID, limit int) ([]store.Decision, error)
}

// Options configures the server. Store may be nil.
type Options struct {
	Port       int
	APIToken   string
	Engine     *engine.Engine
	Source     extractor.Source
	SourceName string
	Store      DecisionReader
}

type Server struct {
	router     *chi.Mux
	http       *http.Server
	port       int
	engine     *engine.Engine
	source     extractor.Source
	sourceName string
	store      DecisionReader
}

func NewServer(opts Options) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       opts.Port,
		engine:     opts.Engine,
		source:     opts.Source,
		sourceName: opts.SourceName,
		store:      opts.Store,
	}
	if s.engine == nil {
		s.engine = engine.New(nil)
	}
	if s.source == nil {
		s.source = extractor.NewRules(nil)
		s.sourceName = "rules"
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Get("/augur/status", s.status)
		r.Post("/modes/decide", s.decide)
		r.Get("/owners/{ownerUUID}/mode", s.ownerMode)
		r.Get("/owners/{ownerUUID}/decisions", s.ownerDecisions)
	})

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	slog.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":         "augur",
		"weights":       s.engine.Scorer().Weights().Name,
		"signal_source": s.sourceName,
		"store":         s.store != nil,
		"modes":         mode.All(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
