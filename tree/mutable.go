package tree

import (
	"iter"
	"slices"
)

// MutableNode is the explicitly mutable tree variant: value, children and
// default can be replaced in place. It is not safe for concurrent use;
// callers sharing one across goroutines must synchronize externally.
type MutableNode[K comparable, V any] struct {
	params *Params[K, V]
	val    V
	hasVal bool
	keys   []K
	subs   []Tree[K, V]
	index  map[K]int
	def    Default[K, V]
}

func (m *MutableNode[K, V]) Value() (V, bool) {
	return m.val, m.hasVal
}

func (m *MutableNode[K, V]) Get(key K) (Tree[K, V], bool) {
	if i, ok := m.index[key]; ok {
		return m.subs[i], true
	}
	return nil, false
}

func (m *MutableNode[K, V]) Apply(key K) (Tree[K, V], error) {
	if i, ok := m.index[key]; ok {
		return m.subs[i], nil
	}
	return m.def.Resolve(m, key, m.params.missing)
}

func (m *MutableNode[K, V]) Len() int {
	return len(m.keys)
}

func (m *MutableNode[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

func (m *MutableNode[K, V]) Children() iter.Seq2[K, Tree[K, V]] {
	return func(yield func(K, Tree[K, V]) bool) {
		for i, k := range m.keys {
			if !yield(k, m.subs[i]) {
				return
			}
		}
	}
}

func (m *MutableNode[K, V]) Default() Default[K, V] {
	return m.def
}

// SetValue replaces the node's value.
func (m *MutableNode[K, V]) SetValue(v V) {
	m.val = v
	m.hasVal = true
}

// ClearValue removes the node's value.
func (m *MutableNode[K, V]) ClearValue() {
	var zero V
	m.val = zero
	m.hasVal = false
}

// SetDefault replaces the node's default.
func (m *MutableNode[K, V]) SetDefault(d Default[K, V]) {
	m.def = d
}

// Put replaces or appends the mapping for key, preserving the position of
// an existing key.
func (m *MutableNode[K, V]) Put(key K, sub Tree[K, V]) {
	if m.index == nil {
		m.index = map[K]int{}
	}
	if i, ok := m.index[key]; ok {
		m.subs[i] = sub
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.subs = append(m.subs, sub)
}

// Delete removes the mapping for key, if present.
func (m *MutableNode[K, V]) Delete(key K) {
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.subs = append(m.subs[:i], m.subs[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
}

// Freeze returns an immutable Builder-backed copy of m at this instant.
// Children are shared, not copied.
func (m *MutableNode[K, V]) Freeze(b *Builder[K, V]) Tree[K, V] {
	return b.Build(valueOf[K, V](m), Entries[K, V](m), m.def)
}
