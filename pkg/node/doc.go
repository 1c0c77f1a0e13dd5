// Package node defines the values the renderer turns into HTML and the
// combinators used to compose them.
//
// A Tag is a tag array: a tag spec (see package tagspec), an optional
// Attrs override and children. The override has its own type, so a child
// is never mistaken for attributes:
//
//	node.H("ul.menu",
//	    node.ForEach(items, func(item Item, i int) node.Node {
//	        return node.H("li", node.A("data-index", i), item.Title)
//	    }),
//	)
//
// Sequences are iter.Seq values. Each, Join, Lines, MapEach, ForEach and
// ForEachMap capture their inputs, so the sequences they return can be
// iterated (rendered) more than once.
package node
