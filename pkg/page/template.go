package page

import "github.com/vango-dev/hiccup/pkg/node"

// Template answers named hooks. The bool result reports whether the hook
// was handled; a handled hook may still return nil.
type Template interface {
	CallHook(name string, args ...any) (node.Node, bool)
}

// Hook produces the node for one named hook.
type Hook func(args ...any) node.Node

// Hooks is a Template backed by a map of hook functions.
type Hooks map[string]Hook

// CallHook calls the hook registered under name.
func (h Hooks) CallHook(name string, args ...any) (node.Node, bool) {
	fn, ok := h[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn(args...), true
}

// Static returns a hook that always yields n.
func Static(n node.Node) Hook {
	return func(...any) node.Node { return n }
}

// Base forwards hooks it cannot answer to a parent template. The hook name
// is rewritten to prefix+name+suffix before the parent sees it.
type Base struct {
	parent Template
	prefix string
	suffix string
}

// SetParent sets the template unresolved hooks are delegated to. A nil
// parent disables delegation.
func (b *Base) SetParent(parent Template, prefix, suffix string) {
	b.parent = parent
	b.prefix = prefix
	b.suffix = suffix
}

// Parent returns the delegation target, or nil.
func (b *Base) Parent() Template {
	return b.parent
}

// CallHook delegates name to the parent.
func (b *Base) CallHook(name string, args ...any) (node.Node, bool) {
	if b.parent == nil {
		return nil, false
	}
	return b.parent.CallHook(b.prefix+name+b.suffix, args...)
}
