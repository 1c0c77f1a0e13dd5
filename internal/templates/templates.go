package templates

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/hiccup/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// SiteName is used for page titles and headings.
	SiteName string

	// Lang is the default page language.
	Lang string

	// Bucket is written to [publish] when set.
	Bucket string
}

// Template represents a site template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"blog":    blogTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E102").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: blog, minimal")
	}
	return tmpl, nil
}

// List returns all available template names in sorted order.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// funcs are available inside templates. json quotes a value so that
// names with quotes or backslashes stay valid JSON and TOML strings.
var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}

// Create writes the template's files below dir and returns their relative
// paths. Existing files are never overwritten.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.SiteName == "" {
		cfg.SiteName = filepath.Base(dir)
	}
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}

	paths := make([]string, 0, len(t.Files))
	for relPath := range t.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
			return nil, errors.New("E103").WithDetail(relPath + " exists in " + dir)
		}
	}

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Funcs(funcs).Parse(t.Files[relPath])
		if err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, errors.New("E101").WithDetail(fullPath).Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return nil, errors.New("E101").WithDetail(fullPath).Wrap(err)
		}
	}

	return paths, nil
}

const configFile = `[server]
root = "site"
reload = true

[page]
lang = {{json .Lang}}
title = {{json .SiteName}}

[publish]
{{- if .Bucket}}
bucket = {{json .Bucket}}
{{- end}}
output_dir = "dist"
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A config file and a single page",
		Files: map[string]string{
			"hiccup.toml": configFile,
			"site/index.json": `{
  "title": {{json .SiteName}},
  "body": ["main.container",
    ["h1", {{json .SiteName}}],
    ["p", "Edit site/index.json and save to reload."]
  ]
}
`,
		},
	}
}

// blogTemplate returns the blog template.
func blogTemplate() *Template {
	return &Template{
		Name:        "blog",
		Description: "Home page, post index and a first post with a stylesheet",
		Files: map[string]string{
			"hiccup.toml": configFile,
			"site/style.css": `body {
  font-family: system-ui, sans-serif;
  max-width: 42rem;
  margin: 2rem auto;
  line-height: 1.6;
}

nav a {
  margin-right: 1rem;
}
`,
			"site/index.json": `{
  "title": {{json .SiteName}},
  "head": [["link[rel]stylesheet[href]/style.css"]],
  "body": ["main",
    ["nav", ["a[href]/", "Home"], ["a[href]/blog/", "Blog"]],
    ["h1", {{json .SiteName}}],
    ["p", "Welcome! Read the ", ["a[href]/blog/first-post", "first post"], "."]
  ]
}
`,
			"site/blog/index.json": `{
  "title": "Blog",
  "head": [["link[rel]stylesheet[href]/style.css"]],
  "body": ["main",
    ["h1", "Blog"],
    ["ul.posts",
      ["li", ["a[href]/blog/first-post", "First post"]]
    ]
  ]
}
`,
			"site/blog/first-post.json": `{
  "title": "First post",
  "head": [["link[rel]stylesheet[href]/style.css"]],
  "body": ["article",
    ["h1", "First post"],
    ["p", "Documents are data: tag arrays with a tag spec, optional attributes and children."],
    ["pre", ["code", "[\"a.button[href]/docs\", {\"class\": \"primary\"}, \"Docs\"]"]],
    {"join": {"separator": " · ", "items": [
      ["a[href]/", "Home"],
      ["a[href]/blog/", "All posts"]
    ]}}
  ]
}
`,
		},
	}
}
