// Package preview serves a live, paginated rendering of one résumé
// source over HTTP. The page shell carries a small polling client that
// fetches pagination state, draws advisory page-boundary markers over
// the rendered document, and reloads when the source or theme changes
// on disk. Heights come from the text estimator by default; a browser
// measurer can be plugged in for real geometry.
package preview

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAddr binds the preview to the loopback interface; the server
// exposes files from the résumé's directory and is not meant to face a
// network.
const DefaultAddr = "127.0.0.1:8080"

// MeasureGeometry reads real block geometry from rendered HTML: the
// header height, every section block's height in document order, and a
// flag per block marking forced break markers. The root package's
// BrowserMeasurer satisfies this signature; tests substitute fixtures.
type MeasureGeometry func(ctx context.Context, htmlContent string) (header float64, heights []float64, breaks []bool, err error)

// Config configures a preview server.
type Config struct {
	// SourcePath is the résumé source file to watch and render.
	SourcePath string

	// Theme selects the theme: a built-in name, a file path, or inline
	// YAML. Empty uses the default theme. File paths are watched for
	// changes like the source.
	Theme string

	// ThemeDir optionally overlays a custom theme directory over the
	// built-ins.
	ThemeDir string

	// Addr is the listen address; empty uses DefaultAddr.
	Addr string

	// Measure optionally supplies real browser geometry. Nil keeps the
	// text estimator.
	Measure MeasureGeometry

	// Logger receives request and lifecycle logs. Nil discards them.
	Logger *log.Logger
}

// Server is the preview HTTP server around one watched source file.
type Server struct {
	addr    string
	session *session
	logger  *log.Logger
	router  http.Handler
}

// NewServer builds the server and performs the initial render so theme
// errors surface immediately instead of on the first request.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		addr:    addr,
		session: sess,
		logger:  logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler exposes the route tree for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until the context is canceled, then shuts down gracefully.
// Bind failures and serve errors are returned as-is.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("preview listening", "addr", s.addr, "source", s.session.sourcePath)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the session's scheduler and renderer.
func (s *Server) Close() error {
	return s.session.Close()
}
