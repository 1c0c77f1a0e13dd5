package tagspec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/hiccup/internal/errors"
)

// valueKind is the Value discriminator.
type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindBare
	kindText
)

// Value is an attribute value: bare (rendered as a valueless attribute),
// text, or absent (omitted).
type Value struct {
	kind valueKind
	text string
}

// Bare returns a valueless attribute value, e.g. disabled.
func Bare() Value { return Value{kind: kindBare} }

// Text returns a textual attribute value. The empty string is a valid value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Absent returns a value that omits the attribute.
func Absent() Value { return Value{} }

// IsBare reports whether v renders as a valueless attribute.
func (v Value) IsBare() bool { return v.kind == kindBare }

// IsAbsent reports whether v omits the attribute.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// Text returns the textual value and whether v is a text value.
func (v Value) Text() (string, bool) { return v.text, v.kind == kindText }

// String returns a debug representation of the value.
func (v Value) String() string {
	switch v.kind {
	case kindBare:
		return "<bare>"
	case kindText:
		return strconv.Quote(v.text)
	default:
		return "<absent>"
	}
}

// Attr is a single entry of an explicit attribute override.
type Attr struct {
	Key   string
	Value any
}

// Attrs is the explicit attribute override of a tag array. Entries are
// merged in order over the attributes of the tag spec.
type Attrs []Attr

// ClassToggle enables or disables one class name.
type ClassToggle struct {
	Name    string
	Enabled bool
}

// Classes is an ordered class override.
type Classes []ClassToggle

// On returns a toggle enabling name.
func On(name string) ClassToggle { return ClassToggle{Name: name, Enabled: true} }

// Off returns a toggle disabling name.
func Off(name string) ClassToggle { return ClassToggle{Name: name} }

// ClassSet is an insertion-ordered mapping of class name to enabled flag.
type ClassSet struct {
	names   []string
	enabled map[string]bool
}

// NewClassSet creates an empty class set.
func NewClassSet() *ClassSet {
	return &ClassSet{enabled: make(map[string]bool)}
}

// Set enables or disables name. An existing name keeps its position.
func (c *ClassSet) Set(name string, on bool) {
	if _, ok := c.enabled[name]; !ok {
		c.names = append(c.names, name)
	}
	c.enabled[name] = on
}

// Has reports whether name is present and its flag.
func (c *ClassSet) Has(name string) (on, present bool) {
	on, present = c.enabled[name]
	return on, present
}

// Len returns the number of class names, enabled or not.
func (c *ClassSet) Len() int { return len(c.names) }

// Enabled returns the enabled class names in insertion order.
func (c *ClassSet) Enabled() []string {
	out := make([]string, 0, len(c.names))
	for _, name := range c.names {
		if c.enabled[name] {
			out = append(out, name)
		}
	}
	return out
}

// Merge applies other over c: flags of other win, new names are appended.
func (c *ClassSet) Merge(other *ClassSet) {
	for _, name := range other.names {
		c.Set(name, other.enabled[name])
	}
}

// AttributeSet is the canonical attribute set of an element.
type AttributeSet struct {
	id      string
	hasID   bool
	Classes *ClassSet
	names   []string
	values  map[string]Value
}

// NewAttributeSet creates an empty attribute set.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{
		Classes: NewClassSet(),
		values:  make(map[string]Value),
	}
}

// ID returns the element id and whether one is set.
func (a *AttributeSet) ID() (string, bool) { return a.id, a.hasID }

// SetID sets the element id.
func (a *AttributeSet) SetID(id string) {
	a.id = id
	a.hasID = true
}

// ClearID unsets the element id.
func (a *AttributeSet) ClearID() {
	a.id = ""
	a.hasID = false
}

// Set sets an attribute other than id and class. An existing name keeps
// its position; new names are appended.
func (a *AttributeSet) Set(name string, v Value) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = v
}

// Get returns the value of an attribute other than id and class.
func (a *AttributeSet) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Len returns the number of attributes other than id and class.
func (a *AttributeSet) Len() int { return len(a.names) }

// Each calls fn for every attribute other than id and class in merge order.
func (a *AttributeSet) Each(fn func(name string, v Value)) {
	for _, name := range a.names {
		fn(name, a.values[name])
	}
}

// Names returns the attribute names other than id and class in merge order.
func (a *AttributeSet) Names() []string {
	return append([]string(nil), a.names...)
}

// Merge applies an explicit override attribute by attribute.
func (a *AttributeSet) Merge(override Attrs) error {
	for _, attr := range override {
		name := strings.ToLower(strings.TrimSpace(attr.Key))
		if name == "" {
			continue
		}
		switch name {
		case "id":
			v, err := ToValue(attr.Value)
			if err != nil {
				return err
			}
			switch s, ok := v.Text(); {
			case ok:
				a.SetID(s)
			case v.IsBare():
				return errors.New("E023").WithDetail("id must be text, got true")
			default:
				a.ClearID()
			}
		case "class":
			classes, err := NormalizeClasses(attr.Value)
			if err != nil {
				return err
			}
			a.Classes.Merge(classes)
		default:
			v, err := ToValue(attr.Value)
			if err != nil {
				return errors.New("E023").WithDetailf("attribute %q: value of type %T", name, attr.Value)
			}
			a.Set(name, v)
		}
	}
	return nil
}

// ToValue converts an override value to a Value.
func ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return x, nil
	case bool:
		if x {
			return Bare(), nil
		}
		return Absent(), nil
	case string:
		return Text(x), nil
	case int:
		return Text(strconv.Itoa(x)), nil
	case int8, int16, int32, int64:
		return Text(fmt.Sprintf("%d", x)), nil
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return Text(fmt.Sprintf("%d", x)), nil
	case float32:
		return Text(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case float64:
		return Text(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case fmt.Stringer:
		return Text(x.String()), nil
	default:
		return Absent(), errors.New("E023").WithDetailf("value of type %T", v)
	}
}

// NormalizeClasses converts a class override of any supported shape to a
// ClassSet. Names are trimmed and lowercased; empty names are skipped.
func NormalizeClasses(v any) (*ClassSet, error) {
	set := NewClassSet()
	add := func(name string, on bool) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			set.Set(name, on)
		}
	}

	switch x := v.(type) {
	case nil:
	case string:
		for _, name := range strings.Split(x, " ") {
			add(name, true)
		}
	case []string:
		for _, name := range x {
			add(name, true)
		}
	case []any:
		for _, item := range x {
			if name, ok := item.(string); ok {
				add(name, true)
			}
		}
	case Classes:
		for _, toggle := range x {
			add(toggle.Name, toggle.Enabled)
		}
	case map[string]bool:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k, x[k])
		}
	case *ClassSet:
		for _, name := range x.names {
			add(name, x.enabled[name])
		}
	default:
		return nil, errors.New("E022").WithDetailf("class override of type %T", v)
	}
	return set, nil
}
