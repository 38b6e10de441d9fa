package traverse

import (
	"errors"
	"iter"

	"github.com/keytree-io/keytree/tree"
)

type zipCtx[K comparable, V, U any] struct {
	key   K
	this  tree.Tree[K, V]
	other tree.Tree[K, U]
}

// Zip visits t and other level by level, matching children by key, and
// rebuilds through b with op(otherNode, thisNode) supplying each output
// value (nil keeps a value-less branch). With strict set, a child key
// missing from other's children prunes that child, even when other's
// default could have covered it. Without strict, other's default is
// consulted and its missing-key failure prunes the child instead of
// propagating; this is the one silent-recovery path in the package. op
// may return Skip to prune. The output carries no default.
func Zip[K comparable, V, U, W any](b *tree.Builder[K, W], t tree.Tree[K, V], other tree.Tree[K, U], strict bool, op func(other tree.Tree[K, U], this tree.Tree[K, V]) (*W, error)) (tree.Tree[K, W], error) {
	step := Step[K, V, W, zipCtx[K, V, U]]{
		Compute: func(c zipCtx[K, V, U]) (Emit[K, W], error) {
			w, err := op(c.other, c.this)
			if err != nil {
				return Emit[K, W]{}, err
			}
			return Emit[K, W]{Key: c.key, Value: w}, nil
		},
		Children: func(c zipCtx[K, V, U]) iter.Seq2[K, tree.Tree[K, V]] {
			return c.this.Children()
		},
		Next: func(c zipCtx[K, V, U], key K, child tree.Tree[K, V]) (zipCtx[K, V, U], bool, error) {
			oc, ok, err := zipCounterpart(c.other, key, strict)
			if err != nil || !ok {
				return zipCtx[K, V, U]{}, false, err
			}
			return zipCtx[K, V, U]{key: key, this: child, other: oc}, true, nil
		},
	}
	return Rebuild(b, zipCtx[K, V, U]{this: t, other: other}, step)
}

func zipCounterpart[K comparable, U any](other tree.Tree[K, U], key K, strict bool) (tree.Tree[K, U], bool, error) {
	if oc, ok := other.Get(key); ok {
		return oc, true, nil
	}
	if strict {
		return nil, false, nil
	}
	oc, err := other.Apply(key)
	if err != nil {
		if errors.Is(err, tree.ErrMissingKey) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return oc, true, nil
}

// Op computes an output value from matched nodes of the two zipped trees.
type Op[K comparable, V, U, W any] func(other tree.Tree[K, U], this tree.Tree[K, V]) (*W, error)

// ZipWith is Zip driven by an operator tree: at each matched node the op
// tree's value, if any, supplies the operator; an operator-less node
// yields a value-less branch. Children of the op tree are resolved through
// Apply, so an op tree default can cover whole families of keys; a child
// with no operator entry at all is pruned.
func ZipWith[K comparable, V, U, W any](b *tree.Builder[K, W], t tree.Tree[K, V], other tree.Tree[K, U], strict bool, ops tree.Tree[K, Op[K, V, U, W]]) (tree.Tree[K, W], error) {
	step := Step[K, V, W, zipWithCtx[K, V, U, W]]{
		Compute: func(c zipWithCtx[K, V, U, W]) (Emit[K, W], error) {
			op, ok := c.ops.Value()
			if !ok {
				return Emit[K, W]{Key: c.key}, nil
			}
			w, err := op(c.other, c.this)
			if err != nil {
				return Emit[K, W]{}, err
			}
			return Emit[K, W]{Key: c.key, Value: w}, nil
		},
		Children: func(c zipWithCtx[K, V, U, W]) iter.Seq2[K, tree.Tree[K, V]] {
			return c.this.Children()
		},
		Next: func(c zipWithCtx[K, V, U, W], key K, child tree.Tree[K, V]) (zipWithCtx[K, V, U, W], bool, error) {
			oc, ok, err := zipCounterpart(c.other, key, strict)
			if err != nil || !ok {
				return zipWithCtx[K, V, U, W]{}, false, err
			}
			opc, ok, err := zipCounterpart(c.ops, key, false)
			if err != nil || !ok {
				return zipWithCtx[K, V, U, W]{}, false, err
			}
			return zipWithCtx[K, V, U, W]{key: key, this: child, other: oc, ops: opc}, true, nil
		},
	}
	return Rebuild(b, zipWithCtx[K, V, U, W]{this: t, other: other, ops: ops}, step)
}

type zipWithCtx[K comparable, V, U, W any] struct {
	key   K
	this  tree.Tree[K, V]
	other tree.Tree[K, U]
	ops   tree.Tree[K, Op[K, V, U, W]]
}
