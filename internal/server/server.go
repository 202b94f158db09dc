package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/repforge/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/entries", s.handleCreateEntry)
		r.Post("/api/v1/entries/{id}/logs", s.handleAppendLogs)
		r.Post("/api/v1/entries/{id}/next", s.handleNextState)
	})

	// Read and pure-calculation endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/entries", s.handleListEntries)
	s.router.Get("/api/v1/entries/{id}", s.handleGetEntry)
	s.router.Get("/api/v1/entries/{id}/logs", s.handleQueryLogs)
	s.router.Get("/api/v1/entries/{id}/backoff", s.handleBackoffForEntry)
	s.router.Get("/api/v1/defaults/{type}", s.handleDefaults)
	s.router.Post("/api/v1/calc/e1rm", s.handleCalcE1RM)
	s.router.Post("/api/v1/calc/target-weight", s.handleCalcTargetWeight)
	s.router.Post("/api/v1/calc/backoff", s.handleCalcBackoff)
	s.router.Post("/api/v1/calc/snap", s.handleCalcSnap)
}
