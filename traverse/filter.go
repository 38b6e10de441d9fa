package traverse

import (
	"iter"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

// Filter rebuilds t keeping only the values satisfying pred; nodes whose
// value is rejected stay as value-less branches, and a strip-empty builder
// collapses the branches this leaves bare. Filter is idempotent:
// Filter(Filter(t, p), p) equals Filter(t, p). pred is consulted only at
// value-bearing nodes; returning Skip there prunes the node and its whole
// subtree, while value-less branches always pass through. Function
// defaults are wrapped so resolved subtrees are filtered on Apply.
func Filter[K comparable, V any](b *tree.Builder[K, V], t tree.Tree[K, V], pred func(path keypath.Path[K], v V) (bool, error)) (tree.Tree[K, V], error) {
	return filterTree(b, t, nil, pred)
}

func filterTree[K comparable, V any](b *tree.Builder[K, V], t tree.Tree[K, V], base keypath.Path[K], pred func(keypath.Path[K], V) (bool, error)) (tree.Tree[K, V], error) {
	step := Step[K, V, V, mapCtx[K, V]]{
		Compute: func(c mapCtx[K, V]) (Emit[K, V], error) {
			em := Emit[K, V]{
				Key:     c.key,
				Default: filterDefault(b, c.node.Default(), c.path, pred),
			}
			if v, ok := c.node.Value(); ok {
				keep, err := pred(c.path, v)
				if err != nil {
					return Emit[K, V]{}, err
				}
				if keep {
					em.Value = &v
				}
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

func filterDefault[K comparable, V any](b *tree.Builder[K, V], d tree.Default[K, V], path keypath.Path[K], pred func(keypath.Path[K], V) (bool, error)) tree.Default[K, V] {
	switch d.Kind() {
	case tree.DefaultSelf:
		return tree.SelfDefault[K, V]()
	case tree.DefaultFunc:
		fn, _ := d.Func()
		return tree.FuncDefault[K, V](func(key K) (tree.Tree[K, V], error) {
			sub, err := fn(key)
			if err != nil {
				return nil, err
			}
			return filterTree(b, sub, path.Append(key), pred)
		})
	default:
		return tree.NoDefault[K, V]()
	}
}
