// Package keypath provides the key-path value type addressing a node in a
// prefix tree by the sequence of keys leading to it.
package keypath

import (
	"fmt"
	"slices"
	"strings"
)

// Path is a sequence of keys from the root; the empty path addresses the
// root itself.
type Path[K comparable] []K

// Root is the empty path.
func Root[K comparable]() Path[K] {
	return nil
}

// Of builds a path from keys.
func Of[K comparable](keys ...K) Path[K] {
	return Path[K](keys)
}

// Append returns a new path extended by key. The receiver is never
// mutated, so prefixes can be shared across restartable traversals.
func (p Path[K]) Append(key K) Path[K] {
	res := make(Path[K], len(p), len(p)+1)
	copy(res, p)
	return append(res, key)
}

// Clone returns an independent copy of p.
func (p Path[K]) Clone() Path[K] {
	return slices.Clone(p)
}

// Equal reports whether p and q hold the same keys in the same order.
func (p Path[K]) Equal(q Path[K]) bool {
	return slices.Equal(p, q)
}

// IsRoot reports whether p addresses the root.
func (p Path[K]) IsRoot() bool {
	return len(p) == 0
}

// Parent returns p without its last key, and false when p is the root.
func (p Path[K]) Parent() (Path[K], bool) {
	if len(p) == 0 {
		return nil, false
	}
	return slices.Clone(p[:len(p)-1]), true
}

// Last returns the final key, and false when p is the root.
func (p Path[K]) Last() (K, bool) {
	if len(p) == 0 {
		var zero K
		return zero, false
	}
	return p[len(p)-1], true
}

// String renders the path with "." between keys, "" for the root.
func (p Path[K]) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, k := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		fmt.Fprint(&sb, k)
	}
	return sb.String()
}
