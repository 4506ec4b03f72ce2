package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tour/app/components"
	"github.com/vango-dev/tour/internal/config"
	"github.com/vango-dev/tour/pkg/middleware"
	"github.com/vango-dev/tour/pkg/server"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		addr  string
		root  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tour server",
		Long: `Start the HTTP server.

Pages are served at /, with ?root=<name> selecting a widget.
Each page opens a live session at /_tour/live.

Examples:
  tour serve
  tour serve --addr :3000 --root counter
  TOUR_LOG_LEVEL=debug tour serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Address = addr
			}
			if cmd.Flags().Changed("root") {
				cfg.Server.Root = root
			}
			if cmd.Flags().Changed("debug") {
				cfg.Server.Debug = debug
			}
			if err := cfg.Validate(components.Names()); err != nil {
				return err
			}

			srv, err := newServer(cfg)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddress, "Address to listen on")
	cmd.Flags().StringVarP(&root, "root", "r", config.DefaultRoot, "Default root widget")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging and handler stack traces")

	return cmd
}

// newServer builds a server with every root registered and the
// configured middleware installed.
func newServer(cfg *config.Config) (*server.Server, error) {
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	srv := server.New(cfg.ServerConfig())
	srv.SetLogger(logger)

	components.RegisterAll(srv)
	if err := srv.SetDefaultRoot(cfg.Server.Root); err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.Prometheus(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		metrics.Observe(srv.Sessions())
		srv.Use(metrics.Handle)
		srv.SetGatherer(reg)
	}

	if cfg.Tracing.Enabled {
		srv.Use(middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.Name)))
	}

	srv.Use(middleware.Logging(logger))

	logger.Info("server configured",
		"addr", cfg.Server.Address,
		"root", cfg.Server.Root,
		"metrics", cfg.Metrics.Enabled,
		"tracing", cfg.Tracing.Enabled)
	return srv, nil
}
