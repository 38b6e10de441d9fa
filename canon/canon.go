// Package canon maps between the hierarchical tree form and its flat
// canonical form: an order-preserving sequence of (key path, value) pairs.
package canon

import (
	"fmt"
	"iter"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

// Flatten yields every node of t with its key path, depth first: pre-order
// when topFirst, post-order otherwise. Each range over the sequence is an
// independent, restartable traversal. The tree must not be mutated while a
// traversal is in progress; there is no concurrent-modification detection.
// Defaults are not flattened.
func Flatten[K comparable, V any](t tree.Tree[K, V], topFirst bool) iter.Seq2[keypath.Path[K], tree.Tree[K, V]] {
	return func(yield func(keypath.Path[K], tree.Tree[K, V]) bool) {
		flatten(t, nil, topFirst, yield)
	}
}

func flatten[K comparable, V any](t tree.Tree[K, V], path keypath.Path[K], topFirst bool, yield func(keypath.Path[K], tree.Tree[K, V]) bool) bool {
	if topFirst && !yield(path, t) {
		return false
	}
	for key, sub := range t.Children() {
		if !flatten(sub, path.Append(key), topFirst, yield) {
			return false
		}
	}
	if !topFirst && !yield(path, t) {
		return false
	}
	return true
}

// Pairs yields the canonical flat form of t: the (key path, value) pairs
// of its value-bearing nodes in pre-order, skipping value-less branches.
func Pairs[K comparable, V any](t tree.Tree[K, V]) iter.Seq2[keypath.Path[K], V] {
	return func(yield func(keypath.Path[K], V) bool) {
		for path, n := range Flatten(t, true) {
			if v, ok := n.Value(); ok {
				if !yield(path, v) {
					return
				}
			}
		}
	}
}

// FromPairs rebuilds a tree from canonical pairs: at each level entries
// sharing a leading key are grouped into one child, the remaining suffix
// recursing, with first-seen order of keys preserved. The result has no
// defaults; for a duplicated path the last value wins.
func FromPairs[K comparable, V any](b *tree.Builder[K, V], pairs iter.Seq2[keypath.Path[K], V]) tree.Tree[K, V] {
	var flat []flatPair[K, V]
	for path, v := range pairs {
		flat = append(flat, flatPair[K, V]{path: path, val: v})
	}
	return fromPairs(b, flat)
}

type flatPair[K comparable, V any] struct {
	path keypath.Path[K]
	val  V
}

func fromPairs[K comparable, V any](b *tree.Builder[K, V], pairs []flatPair[K, V]) tree.Tree[K, V] {
	var rootVal *V
	var order []K
	buckets := map[K][]flatPair[K, V]{}
	for _, p := range pairs {
		if p.path.IsRoot() {
			v := p.val
			rootVal = &v
			continue
		}
		k := p.path[0]
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], flatPair[K, V]{path: p.path[1:], val: p.val})
	}
	entries := make([]tree.Entry[K, V], 0, len(order))
	for _, k := range order {
		entries = append(entries, tree.Entry[K, V]{Key: k, Sub: fromPairs(b, buckets[k])})
	}
	return b.Build(rootVal, entries, tree.NoDefault[K, V]())
}

// OneLevel collapses t to a one-level map of its children's values. It
// fails with ErrNotFlat when some child has children of its own. Children
// without a value are omitted.
func OneLevel[K comparable, V any](t tree.Tree[K, V]) (map[K]V, error) {
	res := make(map[K]V, t.Len())
	for key, sub := range t.Children() {
		if sub.Len() > 0 {
			return nil, fmt.Errorf("%w: key %v has children", tree.ErrNotFlat, key)
		}
		if v, ok := sub.Value(); ok {
			res[key] = v
		}
	}
	return res, nil
}
