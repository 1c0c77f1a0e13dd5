package tagspec

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vango-dev/hiccup/internal/errors"
)

// isSigil reports whether c starts a new token.
func isSigil(c byte) bool {
	return c == '#' || c == '.' || c == '['
}

// scanner walks a tag spec left to right, remembering the consumed tokens
// for diagnostics.
type scanner struct {
	spec  string
	pos   int
	trail []string
}

func (s *scanner) done() bool { return s.pos >= len(s.spec) }

func (s *scanner) rest() string { return s.spec[s.pos:] }

func (s *scanner) fail(code string) *errors.Error {
	return errors.New(code).WithTrail(s.spec, s.trail, s.rest())
}

// skipSpace advances over whitespace and returns how many bytes it skipped.
func (s *scanner) skipSpace() int {
	start := s.pos
	for s.pos < len(s.spec) {
		r, size := utf8.DecodeRuneInString(s.spec[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	return s.pos - start
}

// word scans a run of non-whitespace characters that stops before a sigil.
// Trailing whitespace is consumed only when a sigil or the end follows it.
func (s *scanner) word() (string, bool) {
	start := s.pos
	for s.pos < len(s.spec) && !isSigil(s.spec[s.pos]) {
		r, size := utf8.DecodeRuneInString(s.spec[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	w := s.spec[start:s.pos]
	save := s.pos
	s.skipSpace()
	if s.done() || isSigil(s.spec[s.pos]) {
		return w, true
	}
	s.pos = save
	return w, false
}

// Parse reads a tag spec of the form tag[#id][.class]*[[name]value]* and
// merges the optional override over the attributes it declares.
func Parse(spec string, override Attrs) (string, *AttributeSet, error) {
	s := &scanner{spec: spec}
	attrs := NewAttributeSet()

	start := s.pos
	s.skipSpace()
	tag, ok := s.word()
	if !ok || tag == "" {
		s.pos = start
		return "", nil, s.fail("E001").
			WithSuggestion("Start the spec with an element name, e.g. div#main.card")
	}
	s.trail = append(s.trail, s.spec[start:s.pos])

	for !s.done() {
		start := s.pos
		switch s.spec[s.pos] {
		case '#':
			s.pos++
			id, ok := s.word()
			if !ok {
				s.pos = start
				return "", nil, s.fail("E002")
			}
			if id != "" {
				attrs.SetID(id)
			} else {
				attrs.ClearID()
			}
		case '.':
			s.pos++
			class, ok := s.word()
			if !ok {
				s.pos = start
				return "", nil, s.fail("E002")
			}
			if class != "" {
				attrs.Classes.Set(strings.ToLower(class), true)
			}
		case '[':
			name, value, ok := s.bracket()
			if !ok {
				s.pos = start
				return "", nil, s.fail("E002").
					WithSuggestion("Bracket attributes are written [name]value")
			}
			if name == "class" {
				s.pos = start
				return "", nil, s.fail("E003").
					WithSuggestion("Use .name tokens or the class entry of the attribute override")
			}
			attrs.Set(name, Text(value))
		default:
			return "", nil, s.fail("E002")
		}
		s.trail = append(s.trail, s.spec[start:s.pos])
	}

	if len(override) > 0 {
		if err := attrs.Merge(override); err != nil {
			return "", nil, err
		}
	}
	return tag, attrs, nil
}

// ParseSpec parses a tag spec without an override.
func ParseSpec(spec string) (string, *AttributeSet, error) {
	return Parse(spec, nil)
}

// bracket scans [name]value. The value runs to the next '[' or the end of
// the spec and loses its trailing whitespace.
func (s *scanner) bracket() (name, value string, ok bool) {
	rb := strings.IndexByte(s.spec[s.pos+1:], ']')
	if rb < 0 {
		return "", "", false
	}
	raw := s.spec[s.pos+1 : s.pos+1+rb]
	name = strings.TrimSpace(raw)
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", "", false
	}
	s.pos += rb + 2

	end := strings.IndexByte(s.spec[s.pos:], '[')
	if end < 0 {
		end = len(s.spec) - s.pos
	}
	value = strings.TrimRightFunc(s.spec[s.pos:s.pos+end], unicode.IsSpace)
	s.pos += end
	return strings.ToLower(name), value, true
}
