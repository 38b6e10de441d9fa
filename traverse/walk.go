package traverse

import (
	"errors"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

// Walk visits every node of t pre-order, children in insertion order.
// fn may return Skip to prune a subtree; any other error aborts the walk.
// Defaults are not walked. Walk assumes acyclic children; use WalkShared
// on degenerate or self-referential input.
func Walk[K comparable, V any](t tree.Tree[K, V], fn func(path keypath.Path[K], t tree.Tree[K, V]) error) error {
	return walk(t, nil, fn)
}

func walk[K comparable, V any](t tree.Tree[K, V], path keypath.Path[K], fn func(keypath.Path[K], tree.Tree[K, V]) error) error {
	if err := fn(path, t); err != nil {
		if errors.Is(err, Skip) {
			return nil
		}
		return err
	}
	for key, sub := range t.Children() {
		if err := walk(sub, path.Append(key), fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkShared is Walk with an identity set: a sub-node aliased across
// several paths is visited once, at its first occurrence, so the walk
// terminates on degenerate and child-cyclic trees. Correct but not
// necessarily efficient on such input.
func WalkShared[K comparable, V any](t tree.Tree[K, V], fn func(path keypath.Path[K], t tree.Tree[K, V]) error) error {
	seen := map[tree.Tree[K, V]]bool{}
	return walkShared(t, nil, seen, fn)
}

func walkShared[K comparable, V any](t tree.Tree[K, V], path keypath.Path[K], seen map[tree.Tree[K, V]]bool, fn func(keypath.Path[K], tree.Tree[K, V]) error) error {
	if seen[t] {
		return nil
	}
	seen[t] = true
	if err := fn(path, t); err != nil {
		if errors.Is(err, Skip) {
			return nil
		}
		return err
	}
	for key, sub := range t.Children() {
		if err := walkShared(sub, path.Append(key), seen, fn); err != nil {
			return err
		}
	}
	return nil
}

// Fold accumulates f over the value-bearing nodes of t in pre-order.
func Fold[K comparable, V, A any](t tree.Tree[K, V], z A, f func(acc A, path keypath.Path[K], v V) A) A {
	acc := z
	_ = Walk(t, func(path keypath.Path[K], n tree.Tree[K, V]) error {
		if v, ok := n.Value(); ok {
			acc = f(acc, path, v)
		}
		return nil
	})
	return acc
}
