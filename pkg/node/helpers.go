package node

import (
	"cmp"
	"iter"
	"slices"
)

// Each yields nodes in argument order, unchanged.
func Each(nodes ...Node) Seq {
	return func(yield func(Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Join yields nodes with separator between every pair of non-nil nodes.
// Nil nodes are skipped entirely.
func Join(separator Node, nodes ...Node) Seq {
	return func(yield func(Node) bool) {
		first := true
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if first {
				first = false
			} else if !yield(separator) {
				return
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Lines joins nodes with newlines.
func Lines(nodes ...Node) Seq {
	return Join(Raw("\n"), nodes...)
}

// MapEach yields action(value, key) for every pair of items in source order.
// A nil items sequence yields nothing.
func MapEach[K, V any](items iter.Seq2[K, V], action func(V, K) Node) Seq {
	return func(yield func(Node) bool) {
		if items == nil {
			return
		}
		for k, v := range items {
			if !yield(action(v, k)) {
				return
			}
		}
	}
}

// ForEach yields action(item, index) for every element of items.
func ForEach[T any](items []T, action func(T, int) Node) Seq {
	return MapEach(slices.All(items), action)
}

// ForEachMap yields action(value, key) for every entry of m in key order.
func ForEachMap[K cmp.Ordered, V any](m map[K]V, action func(V, K) Node) Seq {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var entries iter.Seq2[K, V] = func(yield func(K, V) bool) {
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
	return MapEach(entries, action)
}

// If returns n when condition is true and nil otherwise.
func If(condition bool, n Node) Node {
	if condition {
		return n
	}
	return nil
}

// When is like If but only builds the node when condition is true.
func When(condition bool, fn func() Node) Node {
	if condition {
		return fn()
	}
	return nil
}
