package tagspec

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/vango-dev/hiccup/internal/errors"
)

func textAttr(t *testing.T, a *AttributeSet, name string) string {
	t.Helper()
	v, ok := a.Get(name)
	if !ok {
		t.Fatalf("attribute %q not set", name)
	}
	s, ok := v.Text()
	if !ok {
		t.Fatalf("attribute %q is %v, want text", name, v)
	}
	return s
}

func TestParseTagIDAndClasses(t *testing.T) {
	tag, attrs, err := ParseSpec("div#main.card.card--active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != "div" {
		t.Errorf("tag = %q, want %q", tag, "div")
	}
	if id, ok := attrs.ID(); !ok || id != "main" {
		t.Errorf("ID() = %q, %v, want main", id, ok)
	}
	if got, want := attrs.Classes.Enabled(), []string{"card", "card--active"}; !reflect.DeepEqual(got, want) {
		t.Errorf("classes = %v, want %v", got, want)
	}
	if attrs.Len() != 0 {
		t.Errorf("unexpected extra attributes: %v", attrs.Names())
	}
}

func TestParseTagOnly(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"p", "p"},
		{"  span  ", "span"},
		{"my-element", "my-element"},
		{"svg:rect", "svg:rect"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tag, attrs, err := ParseSpec(tt.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tag != tt.want {
				t.Errorf("tag = %q, want %q", tag, tt.want)
			}
			if _, ok := attrs.ID(); ok {
				t.Error("no id expected")
			}
			if attrs.Classes.Len() != 0 {
				t.Error("no classes expected")
			}
		})
	}
}

func TestParseIDLastWins(t *testing.T) {
	_, attrs, err := ParseSpec("div#a#b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, _ := attrs.ID(); id != "b" {
		t.Errorf("id = %q, want b", id)
	}
}

func TestParseEmptyIDClears(t *testing.T) {
	_, attrs, err := ParseSpec("div#a#.x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := attrs.ID(); ok {
		t.Error("empty #token should clear the id")
	}
	if got := attrs.Classes.Enabled(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("classes = %v", got)
	}
}

func TestParseClassesIdempotentAndLowercased(t *testing.T) {
	_, attrs, err := ParseSpec("li.Item.item..active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := attrs.Classes.Enabled(), []string{"item", "active"}; !reflect.DeepEqual(got, want) {
		t.Errorf("classes = %v, want %v", got, want)
	}
}

func TestParseBracketAttributes(t *testing.T) {
	tag, attrs, err := ParseSpec("a[href]https://x.org/#top[Target]_blank[data-empty]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != "a" {
		t.Errorf("tag = %q", tag)
	}
	if got := textAttr(t, attrs, "href"); got != "https://x.org/#top" {
		t.Errorf("href = %q", got)
	}
	if got := textAttr(t, attrs, "target"); got != "_blank" {
		t.Errorf("target = %q", got)
	}
	if got := textAttr(t, attrs, "data-empty"); got != "" {
		t.Errorf("data-empty = %q, want empty text", got)
	}
	if got, want := attrs.Names(), []string{"href", "target", "data-empty"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
}

func TestParseBracketValueWithSpaces(t *testing.T) {
	_, attrs, err := ParseSpec("input[ placeholder ]Your name here  [type]text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := textAttr(t, attrs, "placeholder"); got != "Your name here" {
		t.Errorf("placeholder = %q", got)
	}
	if got := textAttr(t, attrs, "type"); got != "text" {
		t.Errorf("type = %q", got)
	}
}

func TestParseWhitespaceBetweenTokens(t *testing.T) {
	tag, attrs, err := ParseSpec("meta [name]viewport")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != "meta" {
		t.Errorf("tag = %q", tag)
	}
	if got := textAttr(t, attrs, "name"); got != "viewport" {
		t.Errorf("name = %q", got)
	}

	_, attrs, err = ParseSpec("div #x .y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, _ := attrs.ID(); id != "x" {
		t.Errorf("id = %q", id)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		code      string
		trail     []string
		remainder string
	}{
		{"empty", "", "E001", nil, ""},
		{"whitespace only", "   ", "E001", nil, "   "},
		{"sigil first", "#id", "E001", nil, "#id"},
		{"space inside name", "di v", "E001", nil, "di v"},
		{"junk after class", "div.a b", "E002", []string{"div"}, ".a b"},
		{"junk after id", "div.x#a b", "E002", []string{"div", ".x"}, "#a b"},
		{"unclosed bracket", "a[href", "E002", []string{"a"}, "[href"},
		{"empty bracket name", "a[]x", "E002", []string{"a"}, "[]x"},
		{"spaced bracket name", "a[da ta]x", "E002", []string{"a"}, "[da ta]x"},
		{"class bracket", "div[class]x", "E003", []string{"div"}, "[class]x"},
		{"class bracket uppercase", "div.a[ CLASS ]x", "E003", []string{"div", ".a"}, "[ CLASS ]x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSpec(tt.spec)
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, errors.ErrParse) {
				t.Errorf("error %v should match ErrParse", err)
			}
			var pe *errors.Error
			if !stderrors.As(err, &pe) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if pe.Code != tt.code {
				t.Errorf("code = %s, want %s", pe.Code, tt.code)
			}
			if len(pe.Trail) != len(tt.trail) || (len(tt.trail) > 0 && !reflect.DeepEqual(pe.Trail, tt.trail)) {
				t.Errorf("trail = %q, want %q", pe.Trail, tt.trail)
			}
			if pe.Remainder != tt.remainder {
				t.Errorf("remainder = %q, want %q", pe.Remainder, tt.remainder)
			}
		})
	}
}

func TestParseClassBracketAlwaysFails(t *testing.T) {
	specs := []string{
		"div[class]a",
		"p#x.y[class]",
		"span[title]t[class]b c",
		"a[href]/[CLASS]z",
	}
	for _, spec := range specs {
		if _, _, err := ParseSpec(spec); !stderrors.Is(err, errors.ErrParse) {
			t.Errorf("ParseSpec(%q) error = %v, want parse error", spec, err)
		}
	}
}

func TestParseWithOverride(t *testing.T) {
	tag, attrs, err := Parse("a#inline.btn[href]/old[rel]x", Attrs{
		{Key: "href", Value: "/new"},
		{Key: "id", Value: "explicit"},
		{Key: "class", Value: map[string]bool{"btn": false, "primary": true}},
		{Key: "disabled", Value: true},
		{Key: "rel", Value: nil},
		{Key: "tabindex", Value: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag != "a" {
		t.Errorf("tag = %q", tag)
	}
	if id, _ := attrs.ID(); id != "explicit" {
		t.Errorf("id = %q", id)
	}
	if got := attrs.Classes.Enabled(); !reflect.DeepEqual(got, []string{"primary"}) {
		t.Errorf("classes = %v", got)
	}
	if got, want := attrs.Names(), []string{"href", "rel", "disabled", "tabindex"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	if got := textAttr(t, attrs, "href"); got != "/new" {
		t.Errorf("href = %q", got)
	}
	if v, _ := attrs.Get("rel"); !v.IsAbsent() {
		t.Errorf("rel = %v, want absent", v)
	}
	if v, _ := attrs.Get("disabled"); !v.IsBare() {
		t.Errorf("disabled = %v, want bare", v)
	}
	if got := textAttr(t, attrs, "tabindex"); got != "3" {
		t.Errorf("tabindex = %q", got)
	}
}

func TestParseOverrideClearsID(t *testing.T) {
	for _, v := range []any{nil, false} {
		_, attrs, err := Parse("div#x", Attrs{{Key: "id", Value: v}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := attrs.ID(); ok {
			t.Errorf("id override %v should clear the id", v)
		}
	}
}

func TestParseOverrideErrors(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		code string
	}{
		{"class of int", Attr{Key: "class", Value: 5}, "E022"},
		{"class of map any", Attr{Key: "class", Value: map[string]any{"a": true}}, "E022"},
		{"value of slice", Attr{Key: "title", Value: []int{1}}, "E023"},
		{"id of struct", Attr{Key: "id", Value: struct{}{}}, "E023"},
		{"id of true", Attr{Key: "id", Value: true}, "E023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse("div", Attrs{tt.attr})
			if !stderrors.Is(err, errors.ErrInvalidNode) {
				t.Fatalf("error = %v, want invalid node", err)
			}
			var he *errors.Error
			if stderrors.As(err, &he) && he.Code != tt.code {
				t.Errorf("code = %s, want %s", he.Code, tt.code)
			}
		})
	}
}
