package render

import "strings"

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":     true,
	"base":     true,
	"br":       true,
	"col":      true,
	"command":  true,
	"embed":    true,
	"frame":    true,
	"hr":       true,
	"img":      true,
	"input":    true,
	"keygen":   true,
	"link":     true,
	"menuitem": true,
	"meta":     true,
	"param":    true,
	"source":   true,
	"track":    true,
	"wbr":      true,
}

// isVoidElement returns true if the tag is a void element.
func isVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// IsVoidElement reports whether tag never takes children or a closing tag.
func IsVoidElement(tag string) bool {
	return isVoidElement(tag)
}
