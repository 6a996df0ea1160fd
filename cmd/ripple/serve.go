package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/ripple/internal/demo"
	"github.com/vango-dev/ripple/pkg/preview"
	"github.com/vango-dev/ripple/pkg/reactive"
)

func serveCmd(c *cli) *cobra.Command {
	var (
		host  string
		port  int
		route string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start a preview server for the demo application.

Open the printed URL in a browser: clicks and input are sent to the
server over a websocket, dispatched on the retained tree, and the
re-rendered HTML is pushed back. Prometheus metrics are served on
/metrics.

Examples:
  ripple serve
  ripple serve --port 8080
  ripple serve --host 0.0.0.0 --route /todos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if host != "" {
				cfg.Preview.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Preview.Port = port
			}
			if route == "" {
				route = cfg.Render.Route
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rt := reactive.NewRuntime()
			app := demo.New(rt,
				demo.WithInitialPath(route),
				demo.WithLogger(c.logger.With("component", "demo")),
			)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv := preview.New(&preview.Config{
				Address:    cfg.Address(),
				Title:      cfg.Preview.Title,
				Pretty:     cfg.Render.Pretty,
				Runtime:    rt,
				Navigate:   app.Navigate,
				Registerer: reg,
				Gatherer:   reg,
				Logger:     c.logger.With("component", "preview"),
			})
			defer srv.Close()

			if err := srv.Mount(app.View()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(c.stdout, "Preview running at %s", cfg.URL())
			info(c.stdout, "Metrics at %s/metrics", cfg.URL())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&route, "route", "r", "", "Initial route (default from config)")

	return cmd
}
