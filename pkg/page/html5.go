package page

import (
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/render"
)

// Default values of an HTML5 page.
const (
	DefaultLang     = "en"
	DefaultCharset  = "UTF-8"
	DefaultViewport = "width=device-width; initial-scale=1"
)

// Hook names consulted by HTML5.
const (
	HookHTMLLang     = "html_lang"
	HookHeadStart    = "head_start"
	HookMetaCharset  = "meta_charset"
	HookMetaViewport = "meta_viewport"
	HookTitle        = "title"
	HookHeadEnd      = "head_end"
	HookBodyAttrs    = "body_attrs"
	HookBody         = "body"
)

// Defaults are the page-wide values applied to pages that leave them empty.
type Defaults struct {
	Lang     string
	Charset  string
	Viewport string
	Title    string
}

// HTML5 is a complete HTML5 document. Empty fields fall back to the
// package defaults; Hooks and the parent template take precedence over
// fields.
type HTML5 struct {
	Base

	// Hooks are consulted before the parent and the fields below.
	Hooks Hooks

	Lang     string
	Charset  string
	Viewport string

	// Title is omitted from the head when empty.
	Title string

	// Head nodes are appended at the end of <head>.
	Head []node.Node

	BodyAttrs node.Attrs
	Body      node.Node
}

// New creates an HTML5 page with the given body and default settings.
func New(body node.Node) *HTML5 {
	return &HTML5{
		Lang:     DefaultLang,
		Charset:  DefaultCharset,
		Viewport: DefaultViewport,
		Body:     body,
	}
}

// WithDefaults fills empty fields from d and returns p.
func (p *HTML5) WithDefaults(d Defaults) *HTML5 {
	if p.Lang == "" {
		p.Lang = d.Lang
	}
	if p.Charset == "" {
		p.Charset = d.Charset
	}
	if p.Viewport == "" {
		p.Viewport = d.Viewport
	}
	if p.Title == "" {
		p.Title = d.Title
	}
	return p
}

// CallHook answers name from the page's own hooks, then from the parent.
func (p *HTML5) CallHook(name string, args ...any) (node.Node, bool) {
	if n, ok := p.Hooks.CallHook(name, args...); ok {
		return n, true
	}
	return p.Base.CallHook(name, args...)
}

func (p *HTML5) resolve(name string, fallback node.Node) node.Node {
	if n, ok := p.CallHook(name); ok {
		return n
	}
	return fallback
}

// Hiccup implements node.Renderable.
func (p *HTML5) Hiccup() node.Node {
	lang := p.resolve(HookHTMLLang, nil)
	if lang == nil {
		lang = or(p.Lang, DefaultLang)
	}

	head := node.H("head", node.Lines("",
		p.resolve(HookHeadStart, nil),
		mapNode(p.resolve(HookMetaCharset, or(p.Charset, DefaultCharset)), func(charset node.Node) node.Node {
			return node.H("meta", node.A("charset", charset))
		}),
		mapNode(p.resolve(HookMetaViewport, or(p.Viewport, DefaultViewport)), func(content node.Node) node.Node {
			return node.H("meta [name]viewport", node.A("content", content))
		}),
		mapNode(p.resolve(HookTitle, optional(p.Title)), func(title node.Node) node.Node {
			return node.H("title", title)
		}),
		p.resolve(HookHeadEnd, p.headEnd()),
		"",
	))

	var bodyAttrs node.Attrs
	if attrs, ok := p.resolve(HookBodyAttrs, p.BodyAttrs).(node.Attrs); ok {
		bodyAttrs = attrs
	}
	body := node.H("body", bodyAttrs, p.resolve(HookBody, p.Body))

	return node.Lines(
		node.Raw("<!DOCTYPE html>"),
		node.H("html", node.A("lang", lang), node.Lines("", head, body, "")),
	)
}

func (p *HTML5) headEnd() node.Node {
	if len(p.Head) == 0 {
		return nil
	}
	return node.Lines(p.Head...)
}

// Render renders a page template with the default renderer.
func Render(t node.Renderable) (string, error) {
	return render.Render(t)
}

func mapNode(n node.Node, fn func(node.Node) node.Node) node.Node {
	if n == nil {
		return nil
	}
	return fn(n)
}

func optional(s string) node.Node {
	if s == "" {
		return nil
	}
	return s
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
