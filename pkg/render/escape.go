package render

import "strings"

// textSpecials and attrSpecials list the bytes that need an entity.
const (
	textSpecials = "&<>\"'"
	attrSpecials = textSpecials + "\n\r\t"
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return escape(s, textSpecials)
}

// escapeAttr escapes text for a double-quoted attribute value. Besides the
// text entities it encodes whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	return escape(s, attrSpecials)
}

func escape(s, specials string) string {
	i := strings.IndexAny(s, specials)
	if i < 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 16)
	buf.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(specials, c) < 0 {
			buf.WriteByte(c)
			continue
		}
		buf.WriteString(entity(c))
	}
	return buf.String()
}

func entity(c byte) string {
	switch c {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	case '\n':
		return "&#10;"
	case '\r':
		return "&#13;"
	case '\t':
		return "&#9;"
	}
	return string(c)
}
