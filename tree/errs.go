package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is matched by errors.Is for any MissingKeyError.
	ErrMissingKey = errors.New("missing key")

	// ErrNotFlat reports a collapse to a one-level map when some child
	// has children of its own.
	ErrNotFlat = errors.New("tree is not flat")

	// ErrMergeAmbiguity is matched by errors.Is for any MergeAmbiguityError.
	ErrMergeAmbiguity = errors.New("ambiguous merge")

	// ErrNotNavigable reports parent access through a navigator that does
	// not hold the requested position.
	ErrNotNavigable = errors.New("not navigable")
)

// MissingKeyError reports a key covered neither by children nor by a
// resolved default.
type MissingKeyError[K comparable] struct {
	Key K
}

func (e *MissingKeyError[K]) Error() string {
	return fmt.Sprintf("missing key %v", e.Key)
}

func (e *MissingKeyError[K]) Unwrap() error {
	return ErrMissingKey
}

// MergeAmbiguityError reports a key collision during merge or flat-map
// splicing for which no merge mode was supplied.
type MergeAmbiguityError[K comparable] struct {
	Key K
}

func (e *MergeAmbiguityError[K]) Error() string {
	return fmt.Sprintf("ambiguous merge at key %v: no merge mode", e.Key)
}

func (e *MergeAmbiguityError[K]) Unwrap() error {
	return ErrMergeAmbiguity
}
