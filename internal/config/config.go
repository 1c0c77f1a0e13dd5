package config

import (
	"net"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/page"
	"github.com/vango-dev/hiccup/pkg/publish"
	"github.com/vango-dev/hiccup/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hiccup.toml"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultRoot is the default document directory.
	DefaultRoot = "site"

	// DefaultOutput is the default directory for exported pages.
	DefaultOutput = "dist"

	// DefaultReloadInterval is the default polling period of the watcher.
	DefaultReloadInterval = 250 * time.Millisecond

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "hiccup"
)

// Config represents the complete hiccup.toml configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Page    PageConfig    `toml:"page"`
	Render  RenderConfig  `toml:"render"`
	Publish PublishConfig `toml:"publish"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// Root is the directory documents are served from.
	Root string `toml:"root"`

	// Reload enables live reload.
	Reload bool `toml:"reload"`

	// ReloadInterval is the watcher polling period, e.g. "250ms".
	ReloadInterval Duration `toml:"reload_interval"`

	// Watch contains extra paths to watch besides Root.
	Watch []string `toml:"watch"`

	// Ignore replaces the default watcher ignore patterns.
	Ignore []string `toml:"ignore"`
}

// PageConfig holds the defaults applied to HTML5 pages.
type PageConfig struct {
	Lang     string `toml:"lang"`
	Charset  string `toml:"charset"`
	Viewport string `toml:"viewport"`
	Title    string `toml:"title"`
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// PublishConfig contains publishing settings.
type PublishConfig struct {
	Bucket      string `toml:"bucket"`
	Prefix      string `toml:"prefix"`
	Region      string `toml:"region"`
	Endpoint    string `toml:"endpoint"`
	PathStyle   bool   `toml:"path_style"`
	Concurrency int    `toml:"concurrency"`

	// OutputDir is used when no bucket is configured.
	OutputDir string `toml:"output_dir"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			Root:           DefaultRoot,
			Reload:         true,
			ReloadInterval: Duration{DefaultReloadInterval},
		},
		Page: PageConfig{
			Lang:     page.DefaultLang,
			Charset:  page.DefaultCharset,
			Viewport: page.DefaultViewport,
		},
		Render: RenderConfig{
			MaxDepth: render.DefaultMaxDepth,
		},
		Publish: PublishConfig{
			Concurrency: publish.DefaultConcurrency,
			OutputDir:   DefaultOutput,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for hiccup.toml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Keys missing
// from the file keep their defaults; unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E061").
				WithDetail("No hiccup.toml found in " + filepath.Dir(path)).
				WithSuggestion("Create hiccup.toml or run without a config file")
		}
		return nil, errors.New("E060").
			WithDetail(path + ": " + err.Error()).
			WithSuggestion("Check that hiccup.toml is valid TOML")
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New("E060").
			WithDetailf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.configPath = path
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", "must be between 0 and 65535, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Root) == "" {
		return invalid("server.root", "must not be empty")
	}
	if c.Server.ReloadInterval.Duration <= 0 {
		return invalid("server.reload_interval", "must be positive, got %s", c.Server.ReloadInterval.Duration)
	}
	if c.Render.MaxDepth <= 0 {
		return invalid("render.max_depth", "must be positive, got %d", c.Render.MaxDepth)
	}
	if c.Publish.Concurrency <= 0 {
		return invalid("publish.concurrency", "must be positive, got %d", c.Publish.Concurrency)
	}
	if c.Page.Lang != "" {
		if _, err := language.Parse(c.Page.Lang); err != nil {
			return invalid("page.lang", "%q is not a BCP 47 language tag", c.Page.Lang).Wrap(err)
		}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return invalid("log.level", "must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return invalid("log.format", "must be one of %s, got %q", strings.Join(logFormats, ", "), c.Log.Format)
	}
	return nil
}

func invalid(key, format string, args ...any) *errors.Error {
	return errors.New("E062").WithDetailf(key+" "+format, args...)
}

// Address returns the listen address of the preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// RootPath returns the document directory resolved against the config file.
func (c *Config) RootPath() string {
	return c.resolve(c.Server.Root)
}

// OutputPath returns the export directory resolved against the config file.
func (c *Config) OutputPath() string {
	return c.resolve(c.Publish.OutputDir)
}

// WatchPaths returns the extra watch paths resolved against the config file.
func (c *Config) WatchPaths() []string {
	paths := make([]string, len(c.Server.Watch))
	for i, p := range c.Server.Watch {
		paths[i] = c.resolve(p)
	}
	return paths
}

// PageDefaults returns the [page] section as page defaults.
func (c *Config) PageDefaults() page.Defaults {
	return page.Defaults{
		Lang:     c.Page.Lang,
		Charset:  c.Page.Charset,
		Viewport: c.Page.Viewport,
		Title:    c.Page.Title,
	}
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir() == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing hiccup.toml, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E061").
				WithDetail("No hiccup.toml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent holding hiccup.toml.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
