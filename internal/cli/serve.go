package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/internal/server"
	"github.com/matzehuels/influencegraph/pkg/observability"
)

// serveCommand creates the serve command for the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Run the preview server",
		Long: `Run the preview server.

Serves the chart of the input (or the built-in sample report) as SVG, HTML,
PNG and JSON layout, the stock-price lookup API, a health check and
Prometheus metrics. The input file is re-read on every request, so edits
show up on reload.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, noCache)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8000)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, noCache bool) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hooks, err := observability.NewPrometheusHooks(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	book, err := c.loadBook()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sc := c.cfg.Server
	srv := server.New(runner, server.Options{
		Input:           input,
		Book:            book,
		AllowedOrigins:  sc.AllowedOrigins,
		Gatherer:        reg,
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		ShutdownTimeout: sc.ShutdownTimeout,
		Logger:          c.Logger,
	})

	printInfo("Serving on http://%s", sc.Addr)
	printDetail("graph: /graph.html  api: /api/stock-price?company=POSCO  metrics: /metrics")

	err = srv.ListenAndServe(ctx, sc.Addr)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}
