package traverse

import (
	"iter"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

type mapCtx[K comparable, V any] struct {
	key  K
	node tree.Tree[K, V]
	path keypath.Path[K]
}

// Map rebuilds t through b with every value transformed by f. f sees the
// full key path of the node. Returning Skip from f prunes the node and its
// subtree; value-less branches pass through unchanged. Function defaults
// are wrapped so their resolved subtrees are mapped lazily on Apply.
func Map[K comparable, V, W any](b *tree.Builder[K, W], t tree.Tree[K, V], f func(path keypath.Path[K], v V) (W, error)) (tree.Tree[K, W], error) {
	return mapTree(b, t, nil, f)
}

func mapTree[K comparable, V, W any](b *tree.Builder[K, W], t tree.Tree[K, V], base keypath.Path[K], f func(keypath.Path[K], V) (W, error)) (tree.Tree[K, W], error) {
	step := Step[K, V, W, mapCtx[K, V]]{
		Compute: func(c mapCtx[K, V]) (Emit[K, W], error) {
			em := Emit[K, W]{
				Key:     c.key,
				Default: mapDefault(b, c.node.Default(), c.path, f),
			}
			if v, ok := c.node.Value(); ok {
				w, err := f(c.path, v)
				if err != nil {
					return Emit[K, W]{}, err
				}
				em.Value = &w
			}
			return em, nil
		},
		Children: func(c mapCtx[K, V]) iter.Seq2[K, tree.Tree[K, V]] {
			return c.node.Children()
		},
		Next: func(c mapCtx[K, V], key K, child tree.Tree[K, V]) (mapCtx[K, V], bool, error) {
			return mapCtx[K, V]{key: key, node: child, path: c.path.Append(key)}, true, nil
		},
	}
	return Rebuild(b, mapCtx[K, V]{node: t, path: base}, step)
}

func mapDefault[K comparable, V, W any](b *tree.Builder[K, W], d tree.Default[K, V], path keypath.Path[K], f func(keypath.Path[K], V) (W, error)) tree.Default[K, W] {
	switch d.Kind() {
	case tree.DefaultSelf:
		return tree.SelfDefault[K, W]()
	case tree.DefaultFunc:
		fn, _ := d.Func()
		return tree.FuncDefault[K, W](func(key K) (tree.Tree[K, W], error) {
			sub, err := fn(key)
			if err != nil {
				return nil, err
			}
			return mapTree(b, sub, path.Append(key), f)
		})
	default:
		return tree.NoDefault[K, W]()
	}
}

// LazyMap returns a read-only view of t whose values are transformed by f
// on access. Nothing is rebuilt; structural queries delegate to t.
func LazyMap[K comparable, V, W any](t tree.Tree[K, V], f func(V) W) tree.Tree[K, W] {
	return &mappedView[K, V, W]{t: t, f: f}
}

type mappedView[K comparable, V, W any] struct {
	t tree.Tree[K, V]
	f func(V) W
}

func (m *mappedView[K, V, W]) Value() (W, bool) {
	if v, ok := m.t.Value(); ok {
		return m.f(v), true
	}
	var zero W
	return zero, false
}

func (m *mappedView[K, V, W]) Get(key K) (tree.Tree[K, W], bool) {
	sub, ok := m.t.Get(key)
	if !ok {
		return nil, false
	}
	return &mappedView[K, V, W]{t: sub, f: m.f}, true
}

func (m *mappedView[K, V, W]) Apply(key K) (tree.Tree[K, W], error) {
	sub, err := m.t.Apply(key)
	if err != nil {
		return nil, err
	}
	return &mappedView[K, V, W]{t: sub, f: m.f}, nil
}

func (m *mappedView[K, V, W]) Len() int {
	return m.t.Len()
}

func (m *mappedView[K, V, W]) Keys() []K {
	return m.t.Keys()
}

func (m *mappedView[K, V, W]) Children() iter.Seq2[K, tree.Tree[K, W]] {
	return func(yield func(K, tree.Tree[K, W]) bool) {
		for k, sub := range m.t.Children() {
			if !yield(k, &mappedView[K, V, W]{t: sub, f: m.f}) {
				return
			}
		}
	}
}

func (m *mappedView[K, V, W]) Default() tree.Default[K, W] {
	d := m.t.Default()
	switch d.Kind() {
	case tree.DefaultSelf:
		return tree.SelfDefault[K, W]()
	case tree.DefaultFunc:
		fn, _ := d.Func()
		return tree.FuncDefault[K, W](func(key K) (tree.Tree[K, W], error) {
			sub, err := fn(key)
			if err != nil {
				return nil, err
			}
			return &mappedView[K, V, W]{t: sub, f: m.f}, nil
		})
	default:
		return tree.NoDefault[K, W]()
	}
}
