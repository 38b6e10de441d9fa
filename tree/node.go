package tree

import (
	"iter"
	"slices"
)

// node is the immutable tree variant produced by Builder.Build. Children
// are kept in parallel key/subtree slices preserving insertion order, with
// a map index for lookup.
type node[K comparable, V any] struct {
	params *Params[K, V]
	val    V
	hasVal bool
	keys   []K
	subs   []Tree[K, V]
	index  map[K]int
	def    Default[K, V]
}

func (n *node[K, V]) put(key K, sub Tree[K, V]) {
	if n.index == nil {
		n.index = map[K]int{}
	}
	if i, ok := n.index[key]; ok {
		n.subs[i] = sub
		return
	}
	n.index[key] = len(n.keys)
	n.keys = append(n.keys, key)
	n.subs = append(n.subs, sub)
}

func (n *node[K, V]) Value() (V, bool) {
	return n.val, n.hasVal
}

func (n *node[K, V]) Get(key K) (Tree[K, V], bool) {
	if i, ok := n.index[key]; ok {
		return n.subs[i], true
	}
	return nil, false
}

func (n *node[K, V]) Apply(key K) (Tree[K, V], error) {
	if i, ok := n.index[key]; ok {
		return n.subs[i], nil
	}
	return n.def.Resolve(n, key, n.params.missing)
}

func (n *node[K, V]) Len() int {
	return len(n.keys)
}

func (n *node[K, V]) Keys() []K {
	return slices.Clone(n.keys)
}

func (n *node[K, V]) Children() iter.Seq2[K, Tree[K, V]] {
	return func(yield func(K, Tree[K, V]) bool) {
		for i, k := range n.keys {
			if !yield(k, n.subs[i]) {
				return
			}
		}
	}
}

func (n *node[K, V]) Default() Default[K, V] {
	return n.def
}
