// Package render converts node trees into HTML strings.
//
// The renderer walks nodes depth first, left to right:
//
//   - nil renders as nothing
//   - strings, numbers, booleans and fmt.Stringer values are escaped
//   - node.Raw is written verbatim
//   - node.Renderable renders the node its Hiccup method returns
//   - sequences (iter.Seq, []any, ...) are iterated once, in order
//   - node.Tag is parsed with package tagspec and rendered as an element
//
// # Basic Usage
//
//	html, err := render.Render(
//	    node.H("div#main.card", node.A("data-x", 1),
//	        node.H("a[href]/docs", "Docs"),
//	    ),
//	)
//
// # Attributes
//
// id comes first, then class (enabled classes in insertion order), then
// the other attributes in merge order. A true value renders a bare
// attribute; false or nil omits it.
//
// # Void Elements
//
// Void elements (br, img, input, ...) get no closing tag. Giving them
// children fails with E021.
//
// # Errors
//
// Malformed tag specs fail with a parse error (errors.ErrParse) and values
// that cannot be rendered fail with an invalid node error
// (errors.ErrInvalidNode). A failure aborts the whole render; there is no
// partial output.
//
// # Security
//
// All text content and attribute values are escaped. node.Raw bypasses
// escaping and should only be used with trusted content.
package render
