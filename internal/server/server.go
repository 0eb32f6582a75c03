// internal/server/server.go
// Package server exposes the dashboard page, its two reactive callbacks and
// PNG renderings of the charts over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/mwiater/spacexdash/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	maxBodyBytes    = 1 << 20 // 1 MiB
	shutdownTimeout = 5 * time.Second
)

// Options tune the HTTP server.
type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	// Metrics receives one sample per callback; a fresh aggregator is used when nil.
	Metrics *metrics.Aggregator
}

// Server serves one dashboard controller.
type Server struct {
	ctrl    *dashboard.Controller
	opts    Options
	mux     *http.ServeMux
	metrics *metrics.Aggregator
}

// New wires the routes for ctrl.
func New(ctrl *dashboard.Controller, opts Options) *Server {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewAggregator()
	}
	s := &Server{ctrl: ctrl, opts: opts, mux: http.NewServeMux(), metrics: opts.Metrics}

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/layout", s.handleLayout)
	s.mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	s.mux.HandleFunc("POST /api/callbacks/pie", s.handlePieCallback)
	s.mux.HandleFunc("POST /api/callbacks/scatter", s.handleScatterCallback)
	s.mux.HandleFunc("GET /charts/pie.png", s.handlePiePNG)
	s.mux.HandleFunc("GET /charts/scatter.png", s.handleScatterPNG)
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.mux }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.LogEvent("dashboard listening on http://%s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logging.LogEvent("dashboard stopped")
		return nil
	})
	return g.Wait()
}
