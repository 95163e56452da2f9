// Package server exposes the schema inspection and rendering operations over
// HTTP. It renders read-only views of catalog metadata; nothing here mutates
// the database.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	schemalens "github.com/schemalens/schemalens"
)

// Catalog is the metadata source the server reads from. inspect.Inspector
// satisfies it; tests supply stubs.
type Catalog interface {
	ListDatabases(ctx context.Context) ([]string, error)
	InspectDatabase(ctx context.Context, database string) (*schemalens.Database, error)
}

// Server serves the schema inspection API.
type Server struct {
	catalog Catalog
	port    int
	pkg     string
	logger  *slog.Logger
}

// Config holds configuration for the server.
type Config struct {
	Catalog Catalog
	Port    int
	Package string
	Logger  *slog.Logger
}

// NewServer creates a server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pkg := cfg.Package
	if pkg == "" {
		pkg = "dbschema"
	}

	return &Server{
		catalog: cfg.Catalog,
		port:    cfg.Port,
		pkg:     pkg,
		logger:  logger,
	}
}

// Serve starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")

		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Handler builds the route tree. Exposed separately so tests can drive it
// through httptest without a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/api/database.list", s.handleDatabaseList)
	r.Get("/api/tables.list", s.handleTableList)
	r.Get("/api/schema.json", s.handleSchemaJSON)
	r.Get("/api/schema.ddl", s.handleSchemaDDL)
	r.Get("/api/schema.go", s.handleSchemaGo)

	return r
}
