// Package document decodes data-literal documents into nodes.
//
// A document is JSON or MessagePack. Arrays are tag arrays, an object
// right after the tag spec is the attribute override, and objects in child
// position are directives:
//
//	["ul.menu", {"data-role": "nav"},
//	    ["li", ["a[href]/", "Home"]],
//	    {"join": {"separator": " | ", "items": ["a", "b"]}},
//	    {"raw": "<hr>"}
//	]
//
// Directives are raw (trusted HTML), each, lines and join. A top-level
// object that is not a directive describes an HTML5 page with the fields
// title, lang, charset, viewport, head, body_attrs and body.
//
// Object key order is kept, so attributes render in the order they are
// written.
package document
