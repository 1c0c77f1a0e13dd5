package dev

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/hiccup/pkg/document"
)

// ChangeType represents the kind of file that changed.
type ChangeType int

const (
	ChangeDocument ChangeType = iota
	ChangeStyle
	ChangeAsset
)

func (t ChangeType) String() string {
	switch t {
	case ChangeDocument:
		return "document"
	case ChangeStyle:
		return "style"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore patterns to skip (names, path segments or globs).
	Ignore []string

	// Interval is the polling period.
	Interval time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	".hiccup-*",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls files for modification times.
type Watcher struct {
	config   WatcherConfig
	onChange func([]Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	known   map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 250 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{config: config}
}

// OnChange sets the callback receiving each batch of changes.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.prime()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
			if changes := w.poll(); len(changes) > 0 {
				w.mu.Lock()
				callback := w.onChange
				w.mu.Unlock()
				if callback != nil {
					callback(changes)
				}
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// prime records the current state without reporting it.
func (w *Watcher) prime() {
	snap := w.snapshot()
	w.mu.Lock()
	w.known = snap
	w.mu.Unlock()
}

// poll compares the file tree with the last snapshot and returns the
// differences sorted by path.
func (w *Watcher) poll() []Change {
	snap := w.snapshot()

	w.mu.Lock()
	prev := w.known
	w.known = snap
	w.mu.Unlock()

	var changes []Change
	for p, mod := range snap {
		if old, ok := prev[p]; !ok || !mod.Equal(old) {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	for p := range prev {
		if _, ok := snap[p]; !ok {
			changes = append(changes, Change{Path: p, Type: classifyChange(p), Removed: true})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

func (w *Watcher) snapshot() map[string]time.Time {
	snap := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			snap[p] = info.ModTime()
			return nil
		})
	}
	return snap
}

// shouldIgnore reports whether a pattern matches the base name, a path
// segment, or (for patterns with a slash) the whole slash path.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)
	segments := strings.Split(normalized, "/")

	for _, pattern := range w.config.Ignore {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if strings.Contains(pattern, "/") {
			if ok, _ := path.Match(pattern, normalized); ok || strings.Contains(normalized+"/", "/"+strings.Trim(pattern, "/")+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
		for _, seg := range segments {
			if seg == pattern {
				return true
			}
		}
	}
	return false
}

// classifyChange determines the type of change based on file extension.
func classifyChange(p string) ChangeType {
	if document.IsDocument(p) {
		return ChangeDocument
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".css":
		return ChangeStyle
	default:
		return ChangeAsset
	}
}
