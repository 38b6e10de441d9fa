package tree

// DefaultKind discriminates the default variants a node can carry.
type DefaultKind int

const (
	// DefaultNone means lookups beyond children fail with the builder's
	// missing-key handler.
	DefaultNone DefaultKind = iota
	// DefaultFunc resolves absent keys through a caller-supplied function.
	DefaultFunc
	// DefaultSelf resolves every absent key to the node itself, producing
	// a self-referential (infinite) tree.
	DefaultSelf
)

func (k DefaultKind) String() string {
	switch k {
	case DefaultNone:
		return "None"
	case DefaultFunc:
		return "Func"
	case DefaultSelf:
		return "Self"
	default:
		return "Unknown"
	}
}

// Default is a node's fallback for keys absent from its children. It is a
// tagged variant so the self-referential case is representable and
// detectable without deferred evaluation: traversals can inspect Kind and
// special-case DefaultSelf instead of carrying a seen set.
type Default[K comparable, V any] struct {
	kind DefaultKind
	fn   func(K) (Tree[K, V], error)
}

// NoDefault returns the absent default.
func NoDefault[K comparable, V any]() Default[K, V] {
	return Default[K, V]{}
}

// FuncDefault returns a default backed by fn. fn must be pure; it is
// invoked only for keys missing from children and may fail with a
// MissingKeyError to signal that it does not cover the key either.
func FuncDefault[K comparable, V any](fn func(K) (Tree[K, V], error)) Default[K, V] {
	return Default[K, V]{kind: DefaultFunc, fn: fn}
}

// SelfDefault returns a default resolving every absent key to the node
// that carries it.
func SelfDefault[K comparable, V any]() Default[K, V] {
	return Default[K, V]{kind: DefaultSelf}
}

// Kind reports which variant this default is.
func (d Default[K, V]) Kind() DefaultKind {
	return d.kind
}

// IsNone reports whether the default is absent.
func (d Default[K, V]) IsNone() bool {
	return d.kind == DefaultNone
}

// Func returns the backing function of a DefaultFunc default.
func (d Default[K, V]) Func() (func(K) (Tree[K, V], error), bool) {
	if d.kind != DefaultFunc {
		return nil, false
	}
	return d.fn, true
}

// Resolve applies the default for key on behalf of owner. The DefaultNone
// case fails with owner's params handler, which is supplied by the caller
// as miss.
func (d Default[K, V]) Resolve(owner Tree[K, V], key K, miss func(K) error) (Tree[K, V], error) {
	switch d.kind {
	case DefaultSelf:
		return owner, nil
	case DefaultFunc:
		return d.fn(key)
	default:
		return nil, miss(key)
	}
}
