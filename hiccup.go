// Package hiccup renders nested data literals into HTML.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/hiccup"
//
// A tag array starts with a tag spec naming the element, its id, classes
// and simple attributes, optionally followed by an attribute override, and
// then the children:
//
//	html, err := hiccup.Render(
//	    hiccup.H("nav#top.menu",
//	        hiccup.H("a.item[href]/", hiccup.A("class", hiccup.Classes{hiccup.On("active")}), "Home"),
//	        hiccup.H("a.item[href]/docs", "Docs"),
//	    ),
//	)
//
// Rendering is all-or-nothing: a malformed tag spec or an unrenderable
// value fails the whole call, and errors.Is reports ErrParse or
// ErrInvalidNode respectively.
package hiccup

import (
	"cmp"
	"io"
	"iter"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/page"
	"github.com/vango-dev/hiccup/pkg/render"
)

// =============================================================================
// Nodes
// =============================================================================

type (
	// Node is any value the renderer accepts.
	Node = node.Node

	// Tag is a tag array built with H.
	Tag = node.Tag

	// Attr and Attrs are the attribute override of a tag array.
	Attr  = node.Attr
	Attrs = node.Attrs

	// Classes is an ordered class override; build entries with On and Off.
	Classes     = node.Classes
	ClassToggle = node.ClassToggle

	// Raw is trusted HTML emitted without escaping.
	Raw = node.Raw

	// Renderable produces a node when rendered.
	Renderable = node.Renderable
	RenderFunc = node.RenderFunc

	// Seq is a lazy sequence of nodes.
	Seq = node.Seq
)

// H creates a tag array.
func H(spec string, args ...any) Tag { return node.H(spec, args...) }

// A builds an attribute override from alternating keys and values.
func A(kv ...any) Attrs { return node.A(kv...) }

// On enables a class in a Classes override.
func On(name string) ClassToggle { return node.On(name) }

// Off disables a class in a Classes override.
func Off(name string) ClassToggle { return node.Off(name) }

// =============================================================================
// Sequencing
// =============================================================================

// Each yields nodes in argument order.
func Each(nodes ...Node) Seq { return node.Each(nodes...) }

// Join yields nodes with separator between every pair of non-nil nodes.
func Join(separator Node, nodes ...Node) Seq { return node.Join(separator, nodes...) }

// Lines joins nodes with newlines.
func Lines(nodes ...Node) Seq { return node.Lines(nodes...) }

// MapEach yields action(value, key) for every pair of items.
func MapEach[K, V any](items iter.Seq2[K, V], action func(V, K) Node) Seq {
	return node.MapEach(items, action)
}

// ForEach yields action(item, index) for every element of items.
func ForEach[T any](items []T, action func(T, int) Node) Seq {
	return node.ForEach(items, action)
}

// ForEachMap yields action(value, key) for every entry of m in key order.
func ForEachMap[K cmp.Ordered, V any](m map[K]V, action func(V, K) Node) Seq {
	return node.ForEachMap(m, action)
}

// If returns n when condition is true and nil otherwise.
func If(condition bool, n Node) Node { return node.If(condition, n) }

// =============================================================================
// Rendering
// =============================================================================

// Render renders nodes to an HTML string.
func Render(nodes ...Node) (string, error) {
	return render.Render(nodes...)
}

// RenderTo renders nodes and writes the HTML to w. Nothing is written when
// rendering fails.
func RenderTo(w io.Writer, nodes ...Node) error {
	return render.NewRenderer(render.RendererConfig{}).RenderToWriter(w, nodes...)
}

// Page is a complete HTML5 document.
type Page = page.HTML5

// NewPage creates an HTML5 page with the given body.
func NewPage(body Node) *Page { return page.New(body) }

// =============================================================================
// Errors
// =============================================================================

// Error is the structured error returned by failed renders.
type Error = errors.Error

// ErrParse and ErrInvalidNode are matched with errors.Is.
var (
	ErrParse       error = errors.ErrParse
	ErrInvalidNode error = errors.ErrInvalidNode
)
