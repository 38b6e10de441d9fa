package tree

import "errors"

// MergeOptions configures Merge.
type MergeOptions[V any] struct {
	// Overwrite replaces a both-present child with other's child instead
	// of merging the two recursively.
	Overwrite bool

	// Combine merges the two values when both trees carry one at the same
	// node. When nil, other's value wins.
	Combine func(a, b V) V

	// UseDefault resolves keys absent from other's children through
	// other's default. A default miss is swallowed and the original child
	// kept unmodified.
	UseDefault bool
}

// Merge combines t with other. Children of t keep their order: a key
// absent from other keeps t's child, a key present in other is replaced
// (Overwrite) or merged recursively; keys only in other are appended in
// other's order. The resulting value and default come from other where
// other has one, from t otherwise, so merging with an empty tree is the
// identity. The result is Builder output.
func Merge[K comparable, V any](b *Builder[K, V], t, other Tree[K, V], opts MergeOptions[V]) (Tree[K, V], error) {
	var entries []Entry[K, V]
	for key, sub := range t.Children() {
		osub, ok := other.Get(key)
		if !ok && opts.UseDefault {
			resolved, err := other.Apply(key)
			switch {
			case err == nil:
				osub, ok = resolved, true
			case errors.Is(err, ErrMissingKey):
				// default miss: keep the original child
			default:
				return nil, err
			}
		}
		if !ok {
			entries = append(entries, Entry[K, V]{Key: key, Sub: sub})
			continue
		}
		if opts.Overwrite {
			entries = append(entries, Entry[K, V]{Key: key, Sub: osub})
			continue
		}
		merged, err := Merge(b, sub, osub, opts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry[K, V]{Key: key, Sub: merged})
	}
	for key, osub := range other.Children() {
		if _, ok := t.Get(key); ok {
			continue
		}
		entries = append(entries, Entry[K, V]{Key: key, Sub: osub})
	}

	val := mergedValue(t, other, opts.Combine)
	def := other.Default()
	if def.IsNone() {
		def = t.Default()
	}
	return b.Build(val, entries, def), nil
}

func mergedValue[K comparable, V any](t, other Tree[K, V], combine func(a, b V) V) *V {
	tv, tok := t.Value()
	ov, ook := other.Value()
	switch {
	case tok && ook && combine != nil:
		v := combine(tv, ov)
		return &v
	case ook:
		return &ov
	case tok:
		return &tv
	default:
		return nil
	}
}
