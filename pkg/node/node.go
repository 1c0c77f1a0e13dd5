package node

import (
	"iter"

	"github.com/vango-dev/hiccup/pkg/tagspec"
)

// Node is any value the renderer accepts:
//
//   - nil renders as nothing
//   - Raw is emitted verbatim
//   - Tag is an element: tag spec, optional Attrs, children
//   - Renderable renders the node returned by Hiccup
//   - Seq, func(func(any) bool), []any, []Tag and []string are sequences
//   - strings, booleans, numbers and fmt.Stringer values are escaped text
type Node = any

// Seq is a lazy sequence of nodes.
type Seq = iter.Seq[Node]

// Attr and Attrs are the explicit attribute override of a tag array.
type (
	Attr        = tagspec.Attr
	Attrs       = tagspec.Attrs
	Classes     = tagspec.Classes
	ClassToggle = tagspec.ClassToggle
)

// Raw is trusted HTML emitted without escaping.
// Use with caution - can lead to XSS if content is user-provided.
type Raw string

// Tag is a tag array: a tag spec string, an optional Attrs override and
// the children. Build it with H to keep the first element a spec.
type Tag []any

// H creates a tag array. Pass an Attrs value as the first argument to
// override or extend the attributes of the spec.
//
//	H("a.button[href]/docs", Attrs{{Key: "class", Value: "primary"}}, "Docs")
func H(spec string, args ...any) Tag {
	t := make(Tag, 0, len(args)+1)
	t = append(t, spec)
	return append(t, args...)
}

// Spec returns the tag spec and whether the first element is a string.
func (t Tag) Spec() (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	s, ok := t[0].(string)
	return s, ok
}

// Split returns the override and the children of the tag array.
func (t Tag) Split() (Attrs, []any) {
	if len(t) < 2 {
		return nil, nil
	}
	if attrs, ok := t[1].(Attrs); ok {
		return attrs, t[2:]
	}
	return nil, t[1:]
}

// Renderable is anything that can produce a node, such as a page template.
type Renderable interface {
	Hiccup() Node
}

// RenderFunc adapts a function to Renderable.
type RenderFunc func() Node

// Hiccup implements Renderable.
func (f RenderFunc) Hiccup() Node {
	return f()
}

// On returns a toggle enabling name in a Classes override.
func On(name string) ClassToggle { return tagspec.On(name) }

// Off returns a toggle disabling name in a Classes override.
func Off(name string) ClassToggle { return tagspec.Off(name) }

// A builds Attrs from alternating keys and values.
// A trailing key without a value is set to true.
func A(kv ...any) Attrs {
	attrs := make(Attrs, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, _ := kv[i].(string)
		var value any = true
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		attrs = append(attrs, Attr{Key: key, Value: value})
	}
	return attrs
}
