// Package tree implements a generic prefix tree: a recursive associative
// structure addressed by sequences of keys. Each node holds an optional
// value, an insertion-ordered map of key to child, and an optional default
// consulted for keys absent from the children.
//
// Nodes are built only through a Builder, which carries the per-tree
// construction policy (strip-empty, missing-key handling). All
// transformation operations take the Builder as an explicit strategy
// parameter and produce new trees; only MutableNode mutates in place.
//
// Topology classes: trees with no structurally shared sub-nodes are
// canonical; trees aliasing a sub-node across paths are degenerate; a
// DefaultSelf default makes a tree self-referential (infinite).
// Operations assume canonical input unless they say otherwise.
package tree

import "iter"

// Tree is the read contract implemented by every tree variant: the
// immutable Builder output, MutableNode, lazily mapped views, and external
// document adapters. The set of implementations is closed by convention;
// every operation documents which constructor backs its result.
type Tree[K comparable, V any] interface {
	// Value returns the node's value, if present.
	Value() (V, bool)

	// Get looks key up in the children only, never consulting the
	// default. It is the non-failing alternative to Apply.
	Get(key K) (Tree[K, V], bool)

	// Apply looks key up in the children, then through the default, and
	// otherwise fails with the builder's missing-key handler.
	Apply(key K) (Tree[K, V], error)

	// Len returns the number of children.
	Len() int

	// Keys returns the child keys in insertion order.
	Keys() []K

	// Children iterates the children in insertion order.
	Children() iter.Seq2[K, Tree[K, V]]

	// Default returns the node's default variant.
	Default() Default[K, V]
}

// Entry pairs a key with its subtree for construction.
type Entry[K comparable, V any] struct {
	Key K
	Sub Tree[K, V]
}

// Significant reports whether t holds anything: a value, children, or a
// default. Builders with strip-empty enabled omit non-significant children
// at construction time.
func Significant[K comparable, V any](t Tree[K, V]) bool {
	if t == nil {
		return false
	}
	if _, ok := t.Value(); ok {
		return true
	}
	if t.Len() > 0 {
		return true
	}
	return !t.Default().IsNone()
}

// ApplyPath left-folds Apply over keys, descending one level per key.
func ApplyPath[K comparable, V any](t Tree[K, V], keys ...K) (Tree[K, V], error) {
	res := t
	for _, k := range keys {
		sub, err := res.Apply(k)
		if err != nil {
			return nil, err
		}
		res = sub
	}
	return res, nil
}

// Entries collects t's children as a slice in insertion order.
func Entries[K comparable, V any](t Tree[K, V]) []Entry[K, V] {
	res := make([]Entry[K, V], 0, t.Len())
	for k, sub := range t.Children() {
		res = append(res, Entry[K, V]{Key: k, Sub: sub})
	}
	return res
}
