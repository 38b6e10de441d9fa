package tree

// Params is the immutable configuration a Builder applies to every node it
// constructs.
type Params[K comparable, V any] struct {
	// StripEmpty omits any child whose subtree is non-significant at
	// construction time.
	StripEmpty bool

	// OnMissing is invoked by Apply when neither children nor a resolved
	// default cover the requested key. When nil, Apply fails with a
	// MissingKeyError.
	OnMissing func(K) error
}

func (p *Params[K, V]) missing(key K) error {
	if p != nil && p.OnMissing != nil {
		return p.OnMissing(key)
	}
	return &MissingKeyError[K]{Key: key}
}

// Option configures a Builder.
type Option[K comparable, V any] func(*Params[K, V])

// WithStripEmpty sets the strip-empty policy. The default is true.
func WithStripEmpty[K comparable, V any](v bool) Option[K, V] {
	return func(p *Params[K, V]) {
		p.StripEmpty = v
	}
}

// WithOnMissing sets the missing-key handler consulted by Apply.
func WithOnMissing[K comparable, V any](f func(K) error) Option[K, V] {
	return func(p *Params[K, V]) {
		p.OnMissing = f
	}
}

// Builder is the single factory through which nodes are constructed. It is
// also the strategy object threaded through every transformation: node
// factory (Build), empty-node accessor (Empty), and the Significant
// predicate together determine the shape of every produced tree.
type Builder[K comparable, V any] struct {
	params Params[K, V]
}

// NewBuilder returns a Builder with strip-empty enabled unless overridden.
func NewBuilder[K comparable, V any](opts ...Option[K, V]) *Builder[K, V] {
	b := &Builder[K, V]{params: Params[K, V]{StripEmpty: true}}
	for _, opt := range opts {
		opt(&b.params)
	}
	return b
}

// Params returns a copy of the builder's configuration.
func (b *Builder[K, V]) Params() Params[K, V] {
	return b.params
}

// Build is the canonical factory call: an optional value, ordered child
// entries, and a default. A nil value means no value. Duplicate entry keys
// keep the first position and the last subtree. With strip-empty enabled,
// entries whose subtree is nil or non-significant are omitted.
func (b *Builder[K, V]) Build(value *V, entries []Entry[K, V], def Default[K, V]) Tree[K, V] {
	n := &node[K, V]{
		params: &b.params,
		def:    def,
	}
	if value != nil {
		n.val = *value
		n.hasVal = true
	}
	for _, e := range entries {
		if b.params.StripEmpty && !Significant(e.Sub) {
			continue
		}
		n.put(e.Key, e.Sub)
	}
	return n
}

// Empty returns a node with no value, no children and no default.
func (b *Builder[K, V]) Empty() Tree[K, V] {
	return b.Build(nil, nil, NoDefault[K, V]())
}

// Leaf returns a childless node holding v.
func (b *Builder[K, V]) Leaf(v V) Tree[K, V] {
	return b.Build(&v, nil, NoDefault[K, V]())
}

// Branch returns a value-less node over entries.
func (b *Builder[K, V]) Branch(entries ...Entry[K, V]) Tree[K, V] {
	return b.Build(nil, entries, NoDefault[K, V]())
}

// Mutable constructs an explicitly mutable node under the same policy.
func (b *Builder[K, V]) Mutable(value *V, entries []Entry[K, V], def Default[K, V]) *MutableNode[K, V] {
	m := &MutableNode[K, V]{
		params: &b.params,
		def:    def,
		index:  map[K]int{},
	}
	if value != nil {
		m.val = *value
		m.hasVal = true
	}
	for _, e := range entries {
		if b.params.StripEmpty && !Significant(e.Sub) {
			continue
		}
		m.Put(e.Key, e.Sub)
	}
	return m
}

// Update returns a new node with the one mapping for key replaced or
// inserted; value and default are unchanged. The result is Builder output.
func Update[K comparable, V any](b *Builder[K, V], t Tree[K, V], key K, sub Tree[K, V]) Tree[K, V] {
	entries := Entries(t)
	found := false
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Sub = sub
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry[K, V]{Key: key, Sub: sub})
	}
	return b.Build(valueOf(t), entries, t.Default())
}

// Remove returns a new node without the mapping for key.
func Remove[K comparable, V any](b *Builder[K, V], t Tree[K, V], key K) Tree[K, V] {
	entries := Entries(t)
	for i := range entries {
		if entries[i].Key == key {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	return b.Build(valueOf(t), entries, t.Default())
}

// Copy rebuilds t through b: a structure-preserving deep copy. On
// degenerate input aliased subtrees are duplicated, so the copy is
// canonical; identity across paths is not preserved.
func Copy[K comparable, V any](b *Builder[K, V], t Tree[K, V]) Tree[K, V] {
	entries := make([]Entry[K, V], 0, t.Len())
	for k, sub := range t.Children() {
		entries = append(entries, Entry[K, V]{Key: k, Sub: Copy(b, sub)})
	}
	return b.Build(valueOf(t), entries, t.Default())
}

func valueOf[K comparable, V any](t Tree[K, V]) *V {
	if v, ok := t.Value(); ok {
		return &v
	}
	return nil
}
