package document

import (
	"strings"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/page"
)

// Directive names recognised in child position.
const (
	DirectiveRaw   = "raw"
	DirectiveEach  = "each"
	DirectiveLines = "lines"
	DirectiveJoin  = "join"
)

func isDirective(name string) bool {
	switch name {
	case DirectiveRaw, DirectiveEach, DirectiveLines, DirectiveJoin:
		return true
	}
	return false
}

// toTop converts the root value. Objects are pages unless they hold a
// single directive.
func toTop(v any) (node.Node, error) {
	obj, ok := v.(*object)
	if !ok {
		return toNode(v)
	}
	if obj.len() == 1 && isDirective(obj.keys[0]) {
		return toDirective(obj)
	}
	return toPage(obj)
}

func toNode(v any) (node.Node, error) {
	switch x := v.(type) {
	case []any:
		return toTag(x)
	case *object:
		return toDirective(x)
	default:
		return x, nil
	}
}

func toNodes(v any, where string) ([]node.Node, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("E040").WithDetailf("%s expects an array, got %s", where, describe(v))
	}
	nodes := make([]node.Node, len(items))
	for i, item := range items {
		n, err := toNode(item)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// toTag converts an array. The head is kept even when it is not a string
// so that rendering reports the malformed tag array.
func toTag(items []any) (node.Tag, error) {
	tag := make(node.Tag, 0, len(items))
	if len(items) == 0 {
		return tag, nil
	}

	head, err := toNode(items[0])
	if err != nil {
		return nil, err
	}
	tag = append(tag, head)

	rest := items[1:]
	if len(rest) > 0 {
		if obj, ok := rest[0].(*object); ok {
			attrs, err := toAttrs(obj)
			if err != nil {
				return nil, err
			}
			tag = append(tag, attrs)
			rest = rest[1:]
		}
	}

	for _, item := range rest {
		n, err := toNode(item)
		if err != nil {
			return nil, err
		}
		tag = append(tag, n)
	}
	return tag, nil
}

func toAttrs(obj *object) (node.Attrs, error) {
	attrs := make(node.Attrs, 0, obj.len())
	for i, key := range obj.keys {
		v := obj.values[i]
		if strings.EqualFold(strings.TrimSpace(key), "class") {
			classes, err := toClasses(v)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, node.Attr{Key: key, Value: classes})
			continue
		}
		switch v.(type) {
		case []any, *object:
			return nil, errors.New("E040").WithDetailf("attribute %q cannot be %s", key, describe(v))
		}
		attrs = append(attrs, node.Attr{Key: key, Value: v})
	}
	return attrs, nil
}

// toClasses keeps strings and arrays as they are and turns an object of
// booleans into ordered class toggles.
func toClasses(v any) (any, error) {
	obj, ok := v.(*object)
	if !ok {
		return v, nil
	}
	classes := make(node.Classes, 0, obj.len())
	for i, name := range obj.keys {
		on, ok := obj.values[i].(bool)
		if !ok {
			return nil, errors.New("E040").WithDetailf("class %q must be true or false, got %s", name, describe(obj.values[i]))
		}
		classes = append(classes, node.ClassToggle{Name: name, Enabled: on})
	}
	return classes, nil
}

func toDirective(obj *object) (node.Node, error) {
	if obj.len() != 1 {
		return nil, errors.New("E041").WithDetailf("a directive object has exactly one key, got %d", obj.len())
	}
	name, v := obj.keys[0], obj.values[0]

	switch name {
	case DirectiveRaw:
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("E040").WithDetailf("raw expects a string, got %s", describe(v))
		}
		return node.Raw(s), nil
	case DirectiveEach:
		nodes, err := toNodes(v, DirectiveEach)
		if err != nil {
			return nil, err
		}
		return node.Each(nodes...), nil
	case DirectiveLines:
		nodes, err := toNodes(v, DirectiveLines)
		if err != nil {
			return nil, err
		}
		return node.Lines(nodes...), nil
	case DirectiveJoin:
		return toJoin(v)
	}
	return nil, errors.New("E041").WithDetailf("unknown directive %q", name)
}

func toJoin(v any) (node.Node, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, errors.New("E040").WithDetailf("join expects an object, got %s", describe(v))
	}

	var separator node.Node
	var nodes []node.Node
	for i, key := range obj.keys {
		var err error
		switch key {
		case "separator":
			separator, err = toNode(obj.values[i])
		case "items":
			nodes, err = toNodes(obj.values[i], "join items")
		default:
			err = errors.New("E041").WithDetailf("unknown join field %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return node.Join(separator, nodes...), nil
}

func toPage(obj *object) (*page.HTML5, error) {
	p := &page.HTML5{}
	for i, key := range obj.keys {
		v := obj.values[i]
		var err error
		switch key {
		case "title":
			p.Title, err = pageString(key, v)
		case "lang":
			p.Lang, err = pageString(key, v)
		case "charset":
			p.Charset, err = pageString(key, v)
		case "viewport":
			p.Viewport, err = pageString(key, v)
		case "head":
			p.Head, err = toNodes(v, "head")
		case "body":
			p.Body, err = toNode(v)
		case "body_attrs":
			attrs, ok := v.(*object)
			if !ok {
				return nil, errors.New("E040").WithDetailf("body_attrs expects an object, got %s", describe(v))
			}
			p.BodyAttrs, err = toAttrs(attrs)
		default:
			err = errors.New("E041").WithDetailf("unknown page field %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func pageString(key string, v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return "", errors.New("E040").WithDetailf("%s expects a string, got %s", key, describe(v))
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case *object:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	}
	return "a number"
}
