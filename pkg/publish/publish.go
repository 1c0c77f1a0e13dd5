package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/document"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/page"
	"github.com/vango-dev/hiccup/pkg/render"
)

// DefaultConcurrency is the number of pages rendered and stored at once
// when Config.Concurrency is zero.
const DefaultConcurrency = 8

// Page is one page to publish.
type Page struct {
	// Key is the slash-separated destination, e.g. "docs/index.html".
	Key string

	// Node is rendered to produce the page body.
	Node node.Node
}

// Config configures a Publisher.
type Config struct {
	Store       Store
	Renderer    *render.Renderer
	Concurrency int

	// Defaults are applied to HTML5 pages before rendering.
	Defaults page.Defaults

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Publisher renders pages and stores them.
type Publisher struct {
	config Config
}

// NewPublisher creates a Publisher.
func NewPublisher(config Config) *Publisher {
	if config.Renderer == nil {
		config.Renderer = render.NewRenderer(render.RendererConfig{Logger: config.Logger})
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Publisher{config: config}
}

// Publish renders and stores every page, at most Concurrency at a time.
// The first failure cancels the remaining work and is returned together
// with the number of pages stored before it.
func (p *Publisher) Publish(ctx context.Context, pages []Page) (int, error) {
	var stored atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Concurrency)

	for _, pg := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.publishPage(ctx, pg); err != nil {
				p.config.Logger.Error("publish failed", "key", pg.Key, "error", err)
				return err
			}
			stored.Add(1)
			p.config.Logger.Debug("published", "key", pg.Key)
			return nil
		})
	}

	err := g.Wait()
	return int(stored.Load()), err
}

func (p *Publisher) publishPage(ctx context.Context, pg Page) error {
	n := pg.Node
	if hp, ok := n.(*page.HTML5); ok {
		hp.WithDefaults(p.config.Defaults)
	}

	html, err := p.config.Renderer.RenderToString(n)
	if err != nil {
		return fmt.Errorf("%s: %w", pg.Key, err)
	}

	if err := p.config.Store.Put(ctx, pg.Key, []byte(html), ContentTypeHTML); err != nil {
		if he, ok := err.(*errors.Error); ok {
			return he
		}
		return errors.New("E080").WithDetailf("storing %s failed", pg.Key).Wrap(err)
	}
	return nil
}

// Collect decodes every document below dir into pages. The key of
// dir/a/b.json is a/b.html.
func Collect(dir string) ([]Page, error) {
	var pages []Page
	sources := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !document.IsDocument(path) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))) + ".html"
		if prev, ok := sources[key]; ok {
			return errors.New("E040").WithDetailf("%s and %s both publish %s", prev, path, key)
		}
		sources[key] = path

		n, err := document.DecodeFile(path)
		if err != nil {
			return err
		}
		pages = append(pages, Page{Key: key, Node: n})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}
