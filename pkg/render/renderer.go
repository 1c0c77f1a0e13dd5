package render

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/tagspec"
)

// DefaultMaxDepth is the nesting limit used when RendererConfig.MaxDepth is zero.
const DefaultMaxDepth = 1024

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// MaxDepth bounds how deeply nodes may nest. A Renderable that returns
	// itself fails with E024 instead of recursing forever.
	// Defaults to DefaultMaxDepth if not specified.
	MaxDepth int

	// Logger receives a debug record for every failed render.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Renderer turns node trees into HTML strings. A Renderer holds no state
// between calls and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{config: config}
}

var defaultRenderer = NewRenderer(RendererConfig{})

// Render renders nodes with the default renderer.
func Render(nodes ...node.Node) (string, error) {
	return defaultRenderer.RenderToString(nodes...)
}

// RenderToString renders nodes to a single HTML string. Any error aborts
// the whole render; no partial output is returned.
func (r *Renderer) RenderToString(nodes ...node.Node) (string, error) {
	var b strings.Builder
	if err := r.renderNodes(&b, nodes, 0); err != nil {
		r.config.Logger.Debug("render failed",
			"error", err,
			"category", errors.CategoryOf(err))
		return "", err
	}
	return b.String(), nil
}

// RenderToWriter renders nodes and writes the complete HTML to w. Nothing
// is written when rendering fails.
func (r *Renderer) RenderToWriter(w io.Writer, nodes ...node.Node) error {
	html, err := r.RenderToString(nodes...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}

func (r *Renderer) renderNodes(b *strings.Builder, nodes []any, depth int) error {
	for _, n := range nodes {
		if err := r.renderNode(b, n, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderNode dispatches rendering based on the node variant.
func (r *Renderer) renderNode(b *strings.Builder, n node.Node, depth int) error {
	if depth > r.config.MaxDepth {
		return errors.New("E024").WithDetailf("nesting deeper than %d levels", r.config.MaxDepth)
	}

	switch v := n.(type) {
	case nil:
		return nil
	case node.Tag:
		return r.renderTag(b, v, depth)
	case node.Raw:
		b.WriteString(string(v))
		return nil
	case node.Renderable:
		if isNilPointer(v) {
			return nil
		}
		return r.renderNode(b, v.Hiccup(), depth+1)
	case node.Seq:
		return r.renderSeq(b, v, depth)
	case func(func(any) bool):
		return r.renderSeq(b, v, depth)
	case []any:
		return r.renderNodes(b, v, depth+1)
	case []node.Tag:
		for _, t := range v {
			if err := r.renderTag(b, t, depth+1); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, s := range v {
			b.WriteString(escapeHTML(s))
		}
		return nil
	}

	if s, ok := scalarString(n); ok {
		b.WriteString(escapeHTML(s))
		return nil
	}
	return errors.New("E020").WithDetailf("value of type %T", n)
}

// renderSeq iterates a lazy sequence once, rendering items in order.
// A nil sequence renders as nothing.
func (r *Renderer) renderSeq(b *strings.Builder, seq func(func(any) bool), depth int) error {
	if seq == nil {
		return nil
	}
	var err error
	seq(func(item any) bool {
		err = r.renderNode(b, item, depth+1)
		return err == nil
	})
	return err
}

// renderTag renders a tag array: spec, optional override, children.
func (r *Renderer) renderTag(b *strings.Builder, t node.Tag, depth int) error {
	spec, ok := t.Spec()
	if !ok {
		e := errors.New("E004")
		if len(t) == 0 {
			return e.WithDetail("empty tag array")
		}
		return e.WithDetailf("first element is %T", t[0])
	}
	override, children := t.Split()

	tag, attrs, err := tagspec.Parse(spec, override)
	if err != nil {
		return err
	}

	b.WriteByte('<')
	b.WriteString(tag)
	renderAttributes(b, attrs)
	b.WriteByte('>')

	if isVoidElement(tag) {
		if len(children) > 0 {
			return errors.New("E021").WithDetailf("<%s> given %d children", tag, len(children))
		}
		return nil
	}

	if err := r.renderNodes(b, children, depth+1); err != nil {
		return err
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return nil
}

// renderAttributes writes id, then class, then the remaining attributes in
// merge order.
func renderAttributes(b *strings.Builder, attrs *tagspec.AttributeSet) {
	if id, ok := attrs.ID(); ok {
		writeAttr(b, "id", tagspec.Text(id))
	}
	if classes := attrs.Classes.Enabled(); len(classes) > 0 {
		writeAttr(b, "class", tagspec.Text(strings.Join(classes, " ")))
	}
	attrs.Each(func(name string, v tagspec.Value) {
		writeAttr(b, name, v)
	})
}

func writeAttr(b *strings.Builder, name string, v tagspec.Value) {
	if v.IsBare() {
		b.WriteByte(' ')
		b.WriteString(name)
		return
	}
	text, ok := v.Text()
	if !ok {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(escapeAttr(text))
	b.WriteByte('"')
}

// isNilPointer reports whether v holds a nil reference such as a nil pointer.
// Such a Renderable renders like nil.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// scalarString converts text-like values to their string form.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return fmt.Sprintf("%d", x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
