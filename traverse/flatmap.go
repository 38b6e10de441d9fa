package traverse

import (
	"errors"

	"github.com/keytree-io/keytree/tree"
)

// MergeMode resolves a key collision when a spliced subtree's top-level
// keys overlap keys already produced for the same parent.
type MergeMode int

const (
	// MergeUnset raises a MergeAmbiguityError if a collision actually
	// occurs.
	MergeUnset MergeMode = iota
	// MergeKeep keeps the original child.
	MergeKeep
	// MergeReplace replaces the original child with the spliced one.
	MergeReplace
	// MergeDeep merges original with spliced recursively.
	MergeDeep
	// MergeDeepOverwrite merges recursively, spliced children overwriting.
	MergeDeepOverwrite
	// MergeDeepReversed merges spliced with original recursively.
	MergeDeepReversed
	// MergeDeepReversedOverwrite merges reversed, original overwriting.
	MergeDeepReversedOverwrite
)

func (m MergeMode) String() string {
	switch m {
	case MergeUnset:
		return "Unset"
	case MergeKeep:
		return "Keep"
	case MergeReplace:
		return "Replace"
	case MergeDeep:
		return "Deep"
	case MergeDeepOverwrite:
		return "DeepOverwrite"
	case MergeDeepReversed:
		return "DeepReversed"
	case MergeDeepReversedOverwrite:
		return "DeepReversedOverwrite"
	default:
		return "Unknown"
	}
}

// FlatMap rebuilds t with f(value) spliced over every value-bearing node:
// the spliced subtree replaces the node in place, its value (if any)
// becoming the node's value and its children folding into the node's
// already-transformed children. Collisions between spliced keys and
// existing keys are resolved by mode; with MergeUnset an actual collision
// fails with a MergeAmbiguityError. f may return Skip to prune the node,
// or a nil subtree to just drop the value. Function defaults are wrapped
// so resolved subtrees pass through f on Apply, as with Map; a spliced
// subtree's own default replaces the wrapped one and is taken as already
// transformed.
func FlatMap[K comparable, V any](b *tree.Builder[K, V], t tree.Tree[K, V], mode MergeMode, f func(v V) (tree.Tree[K, V], error)) (tree.Tree[K, V], error) {
	out, ok, err := flatMap(b, t, mode, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return b.Empty(), nil
	}
	return out, nil
}

func flatMap[K comparable, V any](b *tree.Builder[K, V], t tree.Tree[K, V], mode MergeMode, f func(V) (tree.Tree[K, V], error)) (tree.Tree[K, V], bool, error) {
	var entries []tree.Entry[K, V]
	for key, child := range t.Children() {
		sub, ok, err := flatMap(b, child, mode, f)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		entries = append(entries, tree.Entry[K, V]{Key: key, Sub: sub})
	}

	var outVal *V
	def := flatMapDefault(b, t.Default(), mode, f)
	if v, ok := t.Value(); ok {
		spliced, err := f(v)
		if err != nil {
			if errors.Is(err, Skip) {
				return nil, false, nil
			}
			return nil, false, err
		}
		if spliced != nil {
			if sv, sok := spliced.Value(); sok {
				outVal = &sv
			}
			if sd := spliced.Default(); !sd.IsNone() {
				def = sd
			}
			for skey, ssub := range spliced.Children() {
				i := entryIndex(entries, skey)
				if i < 0 {
					entries = append(entries, tree.Entry[K, V]{Key: skey, Sub: ssub})
					continue
				}
				resolved, err := spliceCollision(b, mode, skey, entries[i].Sub, ssub)
				if err != nil {
					return nil, false, err
				}
				entries[i].Sub = resolved
			}
		}
	}
	return b.Build(outVal, entries, def), true, nil
}

func flatMapDefault[K comparable, V any](b *tree.Builder[K, V], d tree.Default[K, V], mode MergeMode, f func(V) (tree.Tree[K, V], error)) tree.Default[K, V] {
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
			out, ok, err := flatMap(b, sub, mode, f)
			if err != nil {
				return nil, err
			}
			if !ok {
				return b.Empty(), nil
			}
			return out, nil
		})
	default:
		return tree.NoDefault[K, V]()
	}
}

func entryIndex[K comparable, V any](entries []tree.Entry[K, V], key K) int {
	for i := range entries {
		if entries[i].Key == key {
			return i
		}
	}
	return -1
}

func spliceCollision[K comparable, V any](b *tree.Builder[K, V], mode MergeMode, key K, orig, spliced tree.Tree[K, V]) (tree.Tree[K, V], error) {
	switch mode {
	case MergeKeep:
		return orig, nil
	case MergeReplace:
		return spliced, nil
	case MergeDeep:
		return tree.Merge(b, orig, spliced, tree.MergeOptions[V]{})
	case MergeDeepOverwrite:
		return tree.Merge(b, orig, spliced, tree.MergeOptions[V]{Overwrite: true})
	case MergeDeepReversed:
		return tree.Merge(b, spliced, orig, tree.MergeOptions[V]{})
	case MergeDeepReversedOverwrite:
		return tree.Merge(b, spliced, orig, tree.MergeOptions[V]{Overwrite: true})
	default:
		return nil, &tree.MergeAmbiguityError[K]{Key: key}
	}
}
