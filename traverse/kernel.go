// Package traverse derives every structural transformation over prefix
// trees from one recursion kernel. The kernel is parameterized by two
// callbacks: Compute produces the output node (key, optional value,
// optional default) for the current context, and Next propagates the
// context to a child. Map, Filter, FlatMap, Zip and Fold are all thin
// layers over it.
//
// Two axes vary per operation: what the context carries (the stock
// operations thread the ancestor key path) and whether the result is
// rebuilt concretely through a Builder (everything except LazyMap, which
// returns a view evaluated on access).
//
// Any callback error other than Skip aborts the whole traversal; no
// partial tree is ever returned.
package traverse

import (
	"errors"
	"iter"

	"github.com/keytree-io/keytree/tree"
)

// Skip is returned by a callback to prune the current node and its whole
// subtree from the output, in the manner of fs.SkipDir. It is not an
// error: the traversal continues with the node's siblings.
var Skip = errors.New("skip subtree")

// Emit is the output of Step.Compute for one node: the key under which the
// node appears in its parent (ignored at the root), an optional value and
// an optional default. A nil Value keeps the node as a value-less branch.
type Emit[K comparable, W any] struct {
	Key     K
	Value   *W
	Default tree.Default[K, W]
}

// Step parameterizes the recursion kernel.
type Step[K comparable, V, W, C any] struct {
	// Compute produces the output node for context c. Returning Skip
	// prunes the node and its subtree.
	Compute func(c C) (Emit[K, W], error)

	// Children enumerates the input children visited under c.
	Children func(c C) iter.Seq2[K, tree.Tree[K, V]]

	// Next derives the child context. Returning false prunes the child
	// without consulting Compute.
	Next func(c C, key K, child tree.Tree[K, V]) (C, bool, error)
}

// Rebuild runs the kernel from the root context c0 and reconstructs the
// result through b. A pruned root yields b.Empty().
func Rebuild[K comparable, V, W, C any](b *tree.Builder[K, W], c0 C, step Step[K, V, W, C]) (tree.Tree[K, W], error) {
	out, _, ok, err := rebuild(b, c0, step)
	if err != nil {
		return nil, err
	}
	if !ok {
		return b.Empty(), nil
	}
	return out, nil
}

func rebuild[K comparable, V, W, C any](b *tree.Builder[K, W], c C, step Step[K, V, W, C]) (tree.Tree[K, W], K, bool, error) {
	var zeroK K
	em, err := step.Compute(c)
	if err != nil {
		if errors.Is(err, Skip) {
			return nil, zeroK, false, nil
		}
		return nil, zeroK, false, err
	}

	var entries []tree.Entry[K, W]
	for key, child := range step.Children(c) {
		cc, visit, nerr := step.Next(c, key, child)
		if nerr != nil {
			return nil, zeroK, false, nerr
		}
		if !visit {
			continue
		}
		sub, subKey, ok, rerr := rebuild(b, cc, step)
		if rerr != nil {
			return nil, zeroK, false, rerr
		}
		if !ok {
			continue
		}
		entries = append(entries, tree.Entry[K, W]{Key: subKey, Sub: sub})
	}
	return b.Build(em.Value, entries, em.Default), em.Key, true, nil
}
