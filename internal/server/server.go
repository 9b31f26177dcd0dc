// Package server exposes the masonry pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                     liveness and version
//	POST   /v1/layout                   lay out a board sent in the body
//	POST   /v1/boards/{board}/layout    lay out tiles with the board's persisted heights
//	GET    /v1/boards/{board}/heights   persisted measured heights
//	PUT    /v1/boards/{board}/heights   merge measured heights
//	DELETE /v1/boards/{board}/heights   forget measured heights
//
// Layout options a request leaves unset come from the server defaults. An
// omitted or zero width always means the server's width, so layouts served
// here are never in the unmeasured single-column state. The server's column
// mode applies only when the request sets none of columns, breakpoints or
// column_width.
//
// Errors are JSON objects {"code": ..., "message": ...}. Every response
// carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/masonry/pkg/pipeline"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 8 << 20

	// requestTimeout bounds each request, cache round trips included.
	requestTimeout = 30 * time.Second

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server serves layout requests through a pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger

	// mu serializes every request that may write a board's heights, so
	// concurrent reports never lose each other's updates.
	mu sync.Mutex
}

// New creates a server. defaults supplies layout options that requests leave
// unset.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, defaults: defaults, logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/boards/{board}", func(r chi.Router) {
			r.Post("/layout", s.handleBoardLayout)
			r.Get("/heights", s.handleGetHeights)
			r.Put("/heights", s.handlePutHeights)
			r.Delete("/heights", s.handleDeleteHeights)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errMethodNotAllowed(r.Method))
	})

	return r
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
