// Package server exposes the extraction, analysis and generation pipeline
// over HTTP: template extraction from pptx uploads, preset listing, script
// analysis and deck generation.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanalabo-jp/script-to-slides/analyze"
	"github.com/sanalabo-jp/script-to-slides/config"
	"github.com/sanalabo-jp/script-to-slides/script"
)

// Analyzer is the model-backed analysis dependency; it is an interface so
// handlers can be tested without network access.
type Analyzer interface {
	Analyze(ctx context.Context, slides []script.Slide) (*analyze.Result, error)
}

// Server wires the HTTP handlers over the pipeline packages.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	analyzer Analyzer
	router   *chi.Mux
}

// New builds the server. analyzer may be nil when analysis is disabled.
func New(cfg *config.Config, logger *slog.Logger, analyzer Analyzer) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates/extract", s.handleExtractTemplate)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/generate", s.handleGenerate)
	})

	s.router = r
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
