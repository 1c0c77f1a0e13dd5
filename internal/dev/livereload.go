package dev

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// LiveReloadConfig configures a LiveReload loop.
type LiveReloadConfig struct {
	// Paths are watched for changes.
	Paths []string

	// Ignore overrides DefaultIgnore.
	Ignore []string

	// Interval is the polling period of the watcher.
	Interval time.Duration

	// Check decodes and renders a changed document. A non-nil error is
	// shown in the browser overlay instead of reloading.
	Check func(path string) error

	// Logger for change events. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// LiveReload connects a Watcher to a ReloadServer.
type LiveReload struct {
	config  LiveReloadConfig
	watcher *Watcher
	reload  *ReloadServer
	logger  *slog.Logger
}

// NewLiveReload creates a live reload loop. Call Run to start watching.
func NewLiveReload(config LiveReloadConfig) *LiveReload {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &LiveReload{
		config: config,
		watcher: NewWatcher(WatcherConfig{
			Paths:    config.Paths,
			Ignore:   config.Ignore,
			Interval: config.Interval,
		}),
		reload: NewReloadServer(logger),
		logger: logger,
	}
	l.watcher.OnChange(l.handleChanges)
	return l
}

// HandleWebSocket serves the reload endpoint.
func (l *LiveReload) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l.reload.HandleWebSocket(w, r)
}

// Reloader returns the underlying reload server.
func (l *LiveReload) Reloader() *ReloadServer {
	return l.reload
}

// Run watches until ctx is cancelled and then disconnects all browsers.
func (l *LiveReload) Run(ctx context.Context) error {
	defer l.reload.Close()
	l.logger.Info("watching for changes", "paths", l.config.Paths)
	err := l.watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleChanges checks changed documents before telling browsers to reload.
// A batch of only stylesheet changes swaps stylesheets in place.
func (l *LiveReload) handleChanges(changes []Change) {
	stylesOnly := true
	for _, c := range changes {
		l.logger.Debug("file changed", "path", c.Path, "type", c.Type.String(), "removed", c.Removed)
		if c.Type != ChangeStyle {
			stylesOnly = false
		}
	}

	if stylesOnly {
		for _, c := range changes {
			l.reload.NotifyCSS(c.Path)
		}
		return
	}

	if l.config.Check != nil {
		for _, c := range changes {
			if c.Type != ChangeDocument || c.Removed {
				continue
			}
			if err := l.config.Check(c.Path); err != nil {
				l.logger.Warn("document failed to render", "path", c.Path, "error", err)
				l.reload.NotifyError(c.Path + ": " + err.Error())
				return
			}
		}
	}

	l.reload.ClearError()
	l.reload.NotifyReload()
}
