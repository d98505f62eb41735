// Package server implements the influencegraph preview server.
//
// The server renders one input (a graph or an analysis report) on demand:
//
//	GET /health              liveness probe
//	GET /version             build information
//	GET /api/stock-price     quote lookup by company name
//	GET /graph.svg           interactive SVG
//	GET /graph.html          standalone page with wide and compact drawings
//	GET /graph.png           raster snapshot
//	GET /api/layout          serialized layout
//	GET /metrics             Prometheus metrics
//
// Graph routes accept width, vw, vh, selected, static and type query
// parameters. Every request builds its own scene; nothing mutable is shared
// between requests.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/influencegraph/pkg/observability"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/render"
)

// DefaultAllowedOrigins are the CORS origins of the local frontends.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:8000"}

// Options configures a Server.
type Options struct {
	// Input is the graph or report file served by the graph routes. Empty
	// serves the built-in sample report.
	Input string

	// Book answers stock-price lookups and annotates enterprise nodes.
	// Nil uses the built-in sample book.
	Book *quote.Book

	// AllowedOrigins for CORS. Nil uses DefaultAllowedOrigins.
	AllowedOrigins []string

	// Gatherer backs /metrics. Nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer

	// Timeouts of the underlying http.Server.
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Logger *log.Logger
}

// Server serves rendered graphs over HTTP.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
}

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Book == nil {
		opts.Book = quote.Sample()
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = DefaultAllowedOrigins
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, opts: opts, logger: logger}
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(instrument(observability.HTTP))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stock-price", s.handleStockPrice)
		r.Get("/layout", s.handleGraph(render.FormatJSON))
	})

	r.Get("/graph.svg", s.handleGraph(render.FormatSVG))
	r.Get("/graph.html", s.handleGraph(render.FormatHTML))
	r.Get("/graph.png", s.handleGraph(render.FormatPNG))

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Preview server listening", "addr", addr, "input", inputName(s.opts.Input))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("Shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func inputName(input string) string {
	if input == "" {
		return "sample report"
	}
	return input
}
