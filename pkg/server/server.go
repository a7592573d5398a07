// Package server exposes the analyzer and editing sessions over HTTP.
//
// # Routes
//
//	GET    /healthz
//	GET    /api/v1/standards
//	POST   /api/v1/analyze
//	POST   /api/v1/sessions
//	GET    /api/v1/sessions/{id}
//	DELETE /api/v1/sessions/{id}
//	POST   /api/v1/sessions/{id}/rows
//	PATCH  /api/v1/sessions/{id}/rows/{rowID}
//	DELETE /api/v1/sessions/{id}/rows/{rowID}
//	GET    /api/v1/sessions/{id}/analysis
//
// Errors are returned as {"code": ..., "error": ...}; see
// [github.com/matzehuels/sightline/pkg/httputil] for the status mapping.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/session"
)

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
}

// New creates a server. A nil logger selects log.Default().
func New(cfg Config, runner *pipeline.Runner, sessions session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	return &Server{cfg: cfg, runner: runner, sessions: sessions, logger: logger}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/standards", s.handleStandards)
		r.Post("/analyze", s.handleAnalyze)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Get("/analysis", s.handleSessionAnalysis)
				r.Post("/rows", s.handleAddRow)
				r.Patch("/rows/{rowID}", s.handleUpdateRow)
				r.Delete("/rows/{rowID}", s.handleRemoveRow)
			})
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	if s.cfg.SessionTTL > 0 {
		go s.cleanupSessions(ctx)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// minCleanupInterval bounds how often expired sessions are swept.
const minCleanupInterval = time.Second

// cleanupInterval returns a quarter of the session TTL, at least
// minCleanupInterval.
func cleanupInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, minCleanupInterval)
}

// cleanupSessions drops expired sessions periodically until ctx is done.
func (s *Server) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval(s.cfg.SessionTTL))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.sessions.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			} else if n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
