// Package nav provides parent navigation over prefix trees without live
// back-references: a Navigator indexes every position of a tree in an
// arena and stores each position's parent as an integer index. A subtree
// aliased across several paths gets one arena entry per occurrence, so
// shared structure needs neither the silent last-writer-wins parent of a
// shared back-pointer nor a rebuilding deep copy on attach.
package nav

import (
	"fmt"

	"github.com/keytree-io/keytree/keypath"
	"github.com/keytree-io/keytree/tree"
)

const none = -1

type position[K comparable, V any] struct {
	node   tree.Tree[K, V]
	key    K
	parent int
}

// Navigator is an arena of tree positions. Attach and Detach mutate only
// parent indices, never the underlying trees. A Navigator is not safe for
// concurrent mutation.
type Navigator[K comparable, V any] struct {
	positions []position[K, V]
}

// Index builds a navigator over every position of t, pre-order, root at
// index 0. Defaults are not indexed. t must be acyclic through children;
// self-referential defaults are fine.
func Index[K comparable, V any](t tree.Tree[K, V]) *Navigator[K, V] {
	n := &Navigator[K, V]{}
	n.index(t, none)
	return n
}

func (n *Navigator[K, V]) index(t tree.Tree[K, V], parent int) {
	i := len(n.positions)
	n.positions = append(n.positions, position[K, V]{node: t, parent: parent})
	for key, sub := range t.Children() {
		child := len(n.positions)
		n.index(sub, i)
		n.positions[child].key = key
	}
}

// Len returns the number of indexed positions.
func (n *Navigator[K, V]) Len() int {
	return len(n.positions)
}

// Root returns the index of the root position.
func (n *Navigator[K, V]) Root() int {
	return 0
}

func (n *Navigator[K, V]) at(i int) (*position[K, V], error) {
	if i < 0 || i >= len(n.positions) {
		return nil, fmt.Errorf("%w: position %d of %d", tree.ErrNotNavigable, i, len(n.positions))
	}
	return &n.positions[i], nil
}

// Node returns the tree at position i.
func (n *Navigator[K, V]) Node(i int) (tree.Tree[K, V], error) {
	p, err := n.at(i)
	if err != nil {
		return nil, err
	}
	return p.node, nil
}

// Key returns the key under which position i hangs from its parent.
func (n *Navigator[K, V]) Key(i int) (K, error) {
	p, err := n.at(i)
	if err != nil {
		var zero K
		return zero, err
	}
	return p.key, nil
}

// Parent returns the parent index of position i, or false when i is the
// root or detached.
func (n *Navigator[K, V]) Parent(i int) (int, bool, error) {
	p, err := n.at(i)
	if err != nil {
		return 0, false, err
	}
	if p.parent == none {
		return 0, false, nil
	}
	return p.parent, true, nil
}

// Depth returns 0 for a parentless position, else 1 + Depth(parent).
func (n *Navigator[K, V]) Depth(i int) (int, error) {
	p, err := n.at(i)
	if err != nil {
		return 0, err
	}
	depth := 0
	for p.parent != none {
		depth++
		p = &n.positions[p.parent]
	}
	return depth, nil
}

// Path returns the key path from the root to position i.
func (n *Navigator[K, V]) Path(i int) (keypath.Path[K], error) {
	p, err := n.at(i)
	if err != nil {
		return nil, err
	}
	var rev []K
	for p.parent != none {
		rev = append(rev, p.key)
		p = &n.positions[p.parent]
	}
	path := make(keypath.Path[K], len(rev))
	for j, k := range rev {
		path[len(rev)-1-j] = k
	}
	return path, nil
}

// At resolves a key path to a position index, descending through the
// indexed children only.
func (n *Navigator[K, V]) At(keys ...K) (int, bool) {
	i := 0
	for _, k := range keys {
		found := false
		for j := range n.positions {
			if n.positions[j].parent == i && n.positions[j].key == k {
				i, found = j, true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return i, true
}

// Detach clears position i's parent. Only the parent index changes.
func (n *Navigator[K, V]) Detach(i int) error {
	p, err := n.at(i)
	if err != nil {
		return err
	}
	p.parent = none
	return nil
}

// Attach sets position i's parent to position parent under key. Only the
// parent index changes; children of the parent's tree are untouched. An
// attach that would make i its own ancestor fails, so Depth and Path stay
// total.
func (n *Navigator[K, V]) Attach(i, parent int, key K) error {
	p, err := n.at(i)
	if err != nil {
		return err
	}
	if _, err := n.at(parent); err != nil {
		return err
	}
	for j := parent; j != none; j = n.positions[j].parent {
		if j == i {
			return fmt.Errorf("%w: attaching %d under %d creates a cycle", tree.ErrNotNavigable, i, parent)
		}
	}
	p.parent = parent
	p.key = key
	return nil
}
