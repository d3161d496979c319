// Package server exposes the interview pack generator over HTTP.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bkyoung/interview-pack/internal/adapter/output/docx"
	"github.com/bkyoung/interview-pack/internal/adapter/output/markdown"
	"github.com/bkyoung/interview-pack/internal/domain"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

//go:embed index.html
var indexPage []byte

const shutdownTimeout = 30 * time.Second

// Config holds server configuration.
type Config struct {
	Port          int
	DefaultParams domain.GenerationParameters
}

// Deps are the collaborators the server hands requests to.
type Deps struct {
	Service  *generate.Service
	Markdown *markdown.Writer
	Docx     *docx.Writer
	Logger   *slog.Logger
}

// Server is the HTTP front end: a single-page form plus a small JSON API.
type Server struct {
	httpServer *http.Server
	service    *generate.Service
	markdown   *markdown.Writer
	docx       *docx.Writer
	logger     *slog.Logger
	defaults   domain.GenerationParameters
}

// New creates a server instance and wires its routes.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Service == nil {
		return nil, errors.New("server: generate service is required")
	}
	if deps.Markdown == nil || deps.Docx == nil {
		return nil, errors.New("server: renderers are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		service:  deps.Service,
		markdown: deps.Markdown,
		docx:     deps.Docx,
		logger:   logger,
		defaults: cfg.DefaultParams,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/scan", s.handleScan)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/generate/docx", s.handleGenerateDocx)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.withRequestLog(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
