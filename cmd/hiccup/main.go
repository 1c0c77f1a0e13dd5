package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/hiccup/internal/config"
	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/render"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬ ┬┬┌─┐┌─┐┬ ┬┌─┐
  ├─┤││  │  │ │├─┘
  ┴ ┴┴└─┘└─┘└─┘┴
`

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by all commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "hiccup",
		Short: "Render data-literal documents to HTML",
		Long: `hiccup renders nested data literals into HTML.

A tag array names the element with a compact tag spec, optionally
overrides its attributes, and lists the children:

  ["a#home.nav[href]/", {"class": "active"}, "Home"]

Documents are JSON or MessagePack files. The CLI renders them,
previews a directory of them with live reload, and publishes them
to a directory or an S3 bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to hiccup.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(a),
		specCmd(a),
		serveCmd(a),
		publishCmd(a),
		initCmd(a),
		versionCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and installs the logger.
func (a *app) setup() error {
	if a.noColor || !isTerminal(a.errOut) {
		errors.DisableColors()
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.Log, a.verbose)
	slog.SetDefault(a.logger)

	if cfg.Path() != "" {
		a.logger.Debug("loaded config", "path", cfg.Path())
	}
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	cfg, err := config.LoadFromWorkingDir()
	var he *errors.Error
	if stderrors.As(err, &he) && he.Code == "E061" {
		return config.New(), nil
	}
	return cfg, err
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderer builds a renderer from the [render] section.
func (a *app) renderer() *render.Renderer {
	return render.NewRenderer(render.RendererConfig{
		MaxDepth: a.cfg.Render.MaxDepth,
		Logger:   a.logger,
	})
}

// newLogger builds the slog handler selected by the [log] section.
func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// printBanner prints the ASCII art banner.
func (a *app) printBanner() {
	fmt.Fprint(a.out, banner)
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (a *app) warn(format string, args ...any) {
	fmt.Fprintf(a.errOut, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func (a *app) errorMsg(format string, args ...any) {
	fmt.Fprintf(a.errOut, "%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}
