package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/hiccup/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func errorCode(err error) string {
	var he *errors.Error
	if stderrors.As(err, &he) {
		return he.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.Root != DefaultRoot {
		t.Errorf("Server.Root = %q, want %q", cfg.Server.Root, DefaultRoot)
	}
	if cfg.Server.ReloadInterval.Duration != DefaultReloadInterval {
		t.Errorf("Server.ReloadInterval = %s, want %s", cfg.Server.ReloadInterval.Duration, DefaultReloadInterval)
	}
	if cfg.Page.Lang != "en" || cfg.Page.Charset != "UTF-8" {
		t.Errorf("Page = %+v, want en/UTF-8 defaults", cfg.Page)
	}
	if cfg.Render.MaxDepth != 1024 {
		t.Errorf("Render.MaxDepth = %d, want 1024", cfg.Render.MaxDepth)
	}
	if cfg.Publish.Concurrency != 8 {
		t.Errorf("Publish.Concurrency = %d, want 8", cfg.Publish.Concurrency)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v, want enabled with namespace %q", cfg.Metrics, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if got := errorCode(err); got != "E061" {
		t.Fatalf("missing config: got code %q, want E061 (err %v)", got, err)
	}

	writeConfig(t, tmpDir, `
[server]
host = "0.0.0.0"
port = 8080
root = "docs"
reload = false
reload_interval = "1s"
watch = ["styles"]

[page]
lang = "de-CH"
title = "Handbuch"

[render]
max_depth = 64

[publish]
bucket = "site"
prefix = "www"
path_style = true

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Reload {
		t.Error("Server.Reload should be false")
	}
	if cfg.Server.ReloadInterval.Duration != time.Second {
		t.Errorf("ReloadInterval = %s, want 1s", cfg.Server.ReloadInterval.Duration)
	}
	if len(cfg.Server.Watch) != 1 || cfg.Server.Watch[0] != "styles" {
		t.Errorf("Server.Watch = %v, want [styles]", cfg.Server.Watch)
	}
	if cfg.Page.Lang != "de-CH" || cfg.Page.Title != "Handbuch" {
		t.Errorf("Page = %+v", cfg.Page)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Page.Charset != "UTF-8" {
		t.Errorf("Page.Charset = %q, want default UTF-8", cfg.Page.Charset)
	}
	if cfg.Publish.Concurrency != 8 {
		t.Errorf("Publish.Concurrency = %d, want default 8", cfg.Publish.Concurrency)
	}
	if cfg.Render.MaxDepth != 64 {
		t.Errorf("Render.MaxDepth = %d, want 64", cfg.Render.MaxDepth)
	}
	if !cfg.Publish.PathStyle || cfg.Publish.Bucket != "site" {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.RootPath() != filepath.Join(tmpDir, "docs") {
		t.Errorf("RootPath() = %q", cfg.RootPath())
	}
	if cfg.OutputPath() != filepath.Join(tmpDir, "dist") {
		t.Errorf("OutputPath() = %q", cfg.OutputPath())
	}

	if got := cfg.WatchPaths(); len(got) != 1 || got[0] != filepath.Join(tmpDir, "styles") {
		t.Errorf("WatchPaths() = %v", got)
	}

	defaults := cfg.PageDefaults()
	if defaults.Lang != "de-CH" || defaults.Title != "Handbuch" {
		t.Errorf("PageDefaults() = %+v", defaults)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		detail  string
	}{
		{"syntax", "[server\nport = 1", ""},
		{"type", "[server]\nport = \"eighty\"", ""},
		{"duration", "[server]\nreload_interval = \"soon\"", ""},
		{"unknown key", "[server]\nport = 80\nproxy = true", "server.proxy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir)
			if got := errorCode(err); got != "E060" {
				t.Fatalf("got code %q, want E060 (err %v)", got, err)
			}
			if tt.detail != "" && !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q does not mention %q", err, tt.detail)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		key    string
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "server.port"},
		{"empty root", func(c *Config) { c.Server.Root = " " }, "server.root"},
		{"zero interval", func(c *Config) { c.Server.ReloadInterval = Duration{} }, "server.reload_interval"},
		{"zero depth", func(c *Config) { c.Render.MaxDepth = 0 }, "render.max_depth"},
		{"zero concurrency", func(c *Config) { c.Publish.Concurrency = 0 }, "publish.concurrency"},
		{"bad lang", func(c *Config) { c.Page.Lang = "not a tag" }, "page.lang"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if got := errorCode(err); got != "E062" {
				t.Fatalf("got code %q, want E062 (err %v)", got, err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name %q", err, tt.key)
			}
		})
	}

	cfg := New()
	cfg.Page.Lang = ""
	cfg.Log.Level = "WARN"
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty lang and upper-case level should validate: %v", err)
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	if got := cfg.Address(); got != "localhost:3000" {
		t.Errorf("Address() = %q, want %q", got, "localhost:3000")
	}
	if got := cfg.URL(); got != "http://localhost:3000" {
		t.Errorf("URL() = %q, want %q", got, "http://localhost:3000")
	}

	cfg.Server.Host = "::1"
	cfg.Server.Port = 8080
	if got := cfg.Address(); got != "[::1]:8080" {
		t.Errorf("Address() = %q, want %q", got, "[::1]:8080")
	}
}

func TestPathsWithoutFile(t *testing.T) {
	cfg := New()
	if got := cfg.RootPath(); got != DefaultRoot {
		t.Errorf("RootPath() = %q, want %q", got, DefaultRoot)
	}
	if cfg.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", cfg.Dir())
	}

	cfg.Publish.OutputDir = "/srv/www"
	if got := cfg.OutputPath(); got != "/srv/www" {
		t.Errorf("OutputPath() = %q, want %q", got, "/srv/www")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should return false for empty dir")
	}
	writeConfig(t, tmpDir, "")
	if !Exists(tmpDir) {
		t.Error("Exists should return true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "")

	subDir := filepath.Join(tmpDir, "site", "blog")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(subDir)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	// Resolve symlinks for comparison (macOS /var -> /private/var).
	want, _ := filepath.EvalSymlinks(tmpDir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}

	_, err = FindProjectRoot(t.TempDir())
	if got := errorCode(err); got != "E061" {
		t.Errorf("got code %q, want E061", got)
	}
}

func TestLoadFromWorkingDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "[server]\nport = 4000\n")
	subDir := filepath.Join(tmpDir, "site")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(subDir)

	cfg, err := LoadFromWorkingDir()
	if err != nil {
		t.Fatalf("LoadFromWorkingDir error: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
}
