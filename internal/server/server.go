// Package server exposes lessons, diagram traces and knowledge-check
// attempts over HTTP for the web shell.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/lesson"
	"github.com/san-kum/physlab/internal/persistence"
)

// AttemptStore is the part of persistence.DB the server needs.
type AttemptStore interface {
	RecordAttempt(ctx context.Context, a persistence.Attempt) (int64, error)
	Attempts(ctx context.Context, lessonPath string) ([]persistence.Attempt, error)
}

type Server struct {
	catalog  *lesson.Catalog
	registry *experiment.Registry
	attempts AttemptStore
	animCfg  anim.Config
	logger   *slog.Logger
	validate *validator.Validate
}

func New(catalog *lesson.Catalog, registry *experiment.Registry, attempts AttemptStore, animCfg anim.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		catalog:  catalog,
		registry: registry,
		attempts: attempts,
		animCfg:  animCfg,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/lessons", s.listLessons)
		r.Get("/lessons/{id}", s.getLesson)
		r.Get("/lessons/{id}/examples", s.getExample)

		r.Get("/diagrams", s.listDiagrams)
		r.Get("/diagrams/{name}/trace", s.getTrace)

		r.Post("/knowledge-checks/results", s.postResult)
		r.Get("/knowledge-checks/attempts", s.listAttempts)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
