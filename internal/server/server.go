// Package server exposes the converter over HTTP: an upload page, an upload
// endpoint that answers with the converted file, and small JSON endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/mt940convert/internal/config"
	"github.com/cleared-dev/mt940convert/internal/mt940"
	"github.com/cleared-dev/mt940convert/web"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP collaborator around the conversion core. All state is
// explicit configuration; handlers share nothing mutable between requests.
type Server struct {
	cfg     config.ServerConfig
	parser  mt940.Parser
	log     zerolog.Logger
	version string
	engine  *gin.Engine
}

// New builds a Server from cfg and creates the upload directory.
func New(cfg *config.Config, log zerolog.Logger, version string) (*Server, error) {
	parser := mt940.DefaultRegistry().Get(cfg.Convert.Parser)
	if parser == nil {
		return nil, fmt.Errorf("unknown parser %q", cfg.Convert.Parser)
	}
	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	s := &Server{
		cfg:     cfg.Server,
		parser:  parser,
		log:     log,
		version: version,
	}
	engine, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() (*gin.Engine, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static assets: %w", err)
	}

	r := gin.New()
	// "<base_path>" redirects to "<base_path>/" so the page's relative links resolve.
	r.RedirectTrailingSlash = true
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log))
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Disposition", headerRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	g := r.Group(s.cfg.BasePath)
	g.GET("/", s.index)
	g.StaticFS("/static", http.FS(static))
	g.POST("/upload", s.upload)

	api := g.Group("/api")
	api.GET("/health", s.health)
	api.GET("/formats", s.formats)

	return r, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("base_path", s.cfg.BasePath).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
