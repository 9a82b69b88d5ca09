// Package server provides the browser UI and JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/config"
	"github.com/codelens-ai/pydebug/service"
)

// Server hosts the single-page UI and the analysis API
type Server struct {
	cfg        *config.Config
	service    domain.DebugService
	history    *service.History
	formatter  *service.ReportFormatterImpl
	logger     hclog.Logger
	httpServer *http.Server
}

// New creates a new server
func New(cfg *config.Config, svc domain.DebugService, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{
		cfg:       cfg,
		service:   svc,
		history:   service.NewHistory(cfg.Server.HistoryLimit),
		formatter: service.NewReportFormatter(),
		logger:    logger,
	}
}

// Handler builds the route tree
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/", s.handleIndex)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(s.requirePassword)
		api.Post("/analyze", s.handleAnalyze)
		api.Get("/samples", s.handleSamples)
		api.Get("/history", s.handleHistory)
		api.Get("/reports/{id}", s.handleGetReport)
		api.Get("/reports/{id}/markdown", s.handleReportMarkdown)
	})

	return r
}

// Start serves until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// logRequests logs each request at debug level
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
