package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/hiccup/internal/dev"
	"github.com/vango-dev/hiccup/pkg/middleware"
)

// MetricsPath serves Prometheus metrics when metrics are enabled.
const MetricsPath = "/metrics"

// Server renders documents from a directory on request.
type Server struct {
	config     *ServerConfig
	router     chi.Router
	live       *dev.LiveReload
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	config = config.withDefaults()

	s := &Server{
		config: config,
		logger: config.Logger.With("component", "server"),
	}

	if config.Reload {
		s.live = dev.NewLiveReload(dev.LiveReloadConfig{
			Paths:    dev.CollectWatchPaths("", config.Root, config.Watch),
			Ignore:   config.Ignore,
			Interval: config.ReloadInterval,
			Check:    s.checkDocument,
			Logger:   s.logger,
		})
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.logger))

	if s.config.Metrics {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	if s.live != nil {
		r.Get(dev.ReloadPath, s.live.HandleWebSocket)
	}

	r.Group(func(r chi.Router) {
		if s.config.Metrics {
			r.Use(middleware.NewMetrics(
				middleware.WithNamespace(s.config.MetricsNamespace),
				middleware.WithRegistry(s.config.Registry),
			).Handler)
		}
		if s.config.TracerProvider != nil {
			r.Use(middleware.OpenTelemetry(middleware.WithTracerProvider(s.config.TracerProvider)))
		}
		r.Get("/*", s.handleDocument)
	})

	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Registry returns the Prometheus registry, or nil when metrics are off.
func (s *Server) Registry() *prometheus.Registry {
	return s.config.Registry
}

// LiveReload returns the live reload loop, or nil when reload is off.
func (s *Server) LiveReload() *dev.LiveReload {
	return s.live
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	if s.live != nil {
		go func() {
			if err := s.live.Run(ctx); err != nil {
				s.logger.Error("live reload stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "root", s.config.Root)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.live != nil {
		s.live.Reloader().Close()
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// requestLogger logs one record per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()))
		})
	}
}
