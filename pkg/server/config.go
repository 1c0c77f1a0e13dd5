package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hiccup/pkg/page"
	"github.com/vango-dev/hiccup/pkg/render"
)

// ServerConfig configures the preview server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":3000").
	// Default: ":3000".
	Address string

	// Root is the directory documents and assets are served from.
	// Default: ".".
	Root string

	// Renderer renders decoded documents.
	// Default: a renderer with default settings and the server logger.
	Renderer *render.Renderer

	// Defaults are applied to pages that leave lang, charset, viewport
	// or title empty.
	Defaults page.Defaults

	// Metrics enables request metrics and the /metrics endpoint.
	Metrics bool

	// MetricsNamespace is the Prometheus namespace. Default: "hiccup".
	MetricsNamespace string

	// Registry holds the server's collectors. Default: a new registry.
	Registry *prometheus.Registry

	// TracerProvider enables a span per document request when set.
	TracerProvider trace.TracerProvider

	// Reload enables live reload: a WebSocket endpoint, a script appended
	// to every rendered document and a watcher on Root and Watch.
	Reload bool

	// ReloadInterval is the watcher polling period. Default: 250ms.
	ReloadInterval time.Duration

	// Watch lists extra paths to watch besides Root.
	Watch []string

	// Ignore replaces the default watcher ignore patterns.
	Ignore []string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Logger for requests and lifecycle events. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":3000",
		Root:              ".",
		Defaults:          page.Defaults{Lang: page.DefaultLang, Charset: page.DefaultCharset, Viewport: page.DefaultViewport},
		MetricsNamespace:  "hiccup",
		ReloadInterval:    250 * time.Millisecond,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.Root == "" {
		c.Root = defaults.Root
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = defaults.MetricsNamespace
	}
	if c.ReloadInterval <= 0 {
		c.ReloadInterval = defaults.ReloadInterval
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Renderer == nil {
		c.Renderer = render.NewRenderer(render.RendererConfig{Logger: c.Logger})
	}
	if c.Metrics && c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	return &c
}
