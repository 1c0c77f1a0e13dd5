package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hiccup/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		root    string
		port    int
		host    string
		reload  bool
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview a directory of documents",
		Long: `Start the preview server.

Every request renders the matching document from the root directory:
/blog/post renders blog/post.json (or .msgpack, .mp) and a directory
renders its index document. With live reload, browsers refresh when a
document changes and show an overlay when it no longer renders.

Examples:
  hiccup serve
  hiccup serve --root docs --port 8080
  hiccup serve --reload=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("root") {
				a.cfg.Server.Root = root
			}
			if flags.Changed("port") {
				a.cfg.Server.Port = port
			}
			if flags.Changed("host") {
				a.cfg.Server.Host = host
			}
			if flags.Changed("reload") {
				a.cfg.Server.Reload = reload
			}
			if flags.Changed("metrics") {
				a.cfg.Metrics.Enabled = metrics
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Document directory (default from hiccup.toml)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from hiccup.toml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from hiccup.toml)")
	cmd.Flags().BoolVar(&reload, "reload", true, "Enable live reload")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "Expose Prometheus metrics on /metrics")

	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg
	srv := server.New(&server.ServerConfig{
		Address:          cfg.Address(),
		Root:             cfg.RootPath(),
		Renderer:         a.renderer(),
		Defaults:         cfg.PageDefaults(),
		Metrics:          cfg.Metrics.Enabled,
		MetricsNamespace: cfg.Metrics.Namespace,
		Reload:           cfg.Server.Reload,
		ReloadInterval:   cfg.Server.ReloadInterval.Duration,
		Watch:            cfg.WatchPaths(),
		Ignore:           cfg.Server.Ignore,
		Logger:           a.logger,
	})

	a.printBanner()
	a.success("Serving %s at %s", cfg.RootPath(), cfg.URL())
	if cfg.Server.Reload {
		a.info("Live reload enabled")
	}
	if cfg.Metrics.Enabled {
		a.info("Metrics at %s%s", cfg.URL(), server.MetricsPath)
	}

	if _, err := os.Stat(cfg.RootPath()); err != nil {
		a.warn("Document root %s does not exist yet", cfg.RootPath())
	}

	return srv.Run(ctx)
}
