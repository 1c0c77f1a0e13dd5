// Package tagspec parses compact tag specifications into attribute sets.
//
// A tag spec is a tag name followed by any number of tokens:
//
//	div#main.card.card--active
//	a[href]https://example.com[target]_blank
//	meta [name]viewport
//
// The tokens are:
//
//   - #id     sets the id; the last one wins and an empty #id clears it
//   - .class  enables a (lowercased) class
//   - [name]value sets an attribute; the value runs to the next '[' or
//     the end, so it may contain '#', '.' and spaces but never '['
//
// Classes cannot be set with [class]value. They come from .class tokens or
// from the class entry of an explicit Attrs override, which may be a
// string, a slice of names, a map[string]bool or an ordered Classes list.
// Override classes are merged over inline ones, so an override can disable
// a class the spec enabled.
package tagspec
