// Package web exposes the backup engine over HTTP. All routes require a
// bearer token; the token's user id scopes every operation.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ablinov/lifevault/internal/backup"
	"github.com/ablinov/lifevault/internal/backup/envelope"
	"github.com/ablinov/lifevault/internal/logging"
	"github.com/ablinov/lifevault/internal/server/config"
)

// Exporter is the part of the backup engine the export routes need.
type Exporter interface {
	Export(ctx context.Context, ownerID string, modules []string) (*envelope.Backup, error)
	Counts(ctx context.Context, ownerID string) (map[string]int, error)
}

// Importer is the part of the backup engine the import route needs.
type Importer interface {
	Import(ctx context.Context, ownerID string, doc *envelope.Backup, mode backup.Mode) (*backup.ImportResult, error)
}

// Server is the HTTP front of the backup engine.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	exporter Exporter
	importer Importer

	httpServer *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger, exporter Exporter, importer Importer) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		exporter: exporter,
		importer: importer,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.EndpointAddrHTTP,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Route("/api/backup", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/export", s.handleExport)
		r.Get("/export/counts", s.handleExportCounts)
		r.Post("/preview", s.handlePreview)
		r.Post("/import", s.handleImport)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
