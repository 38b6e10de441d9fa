package stream

import (
	"context"
	"errors"

	"github.com/keytree-io/keytree/handoff"
	"github.com/keytree-io/keytree/tree"
)

// Consumer is the pulling end of the bridge.
type Consumer[K comparable, V any] struct {
	root *Cursor[K, V]
}

// NewConsumer returns a consumer draining slot. The root layer ends when
// the producer closes the slot.
func NewConsumer[K comparable, V any](slot *handoff.Slot[Event[K, V]]) *Consumer[K, V] {
	return &Consumer[K, V]{root: &Cursor[K, V]{slot: slot, root: true}}
}

// Root returns the cursor over the top-level node.
func (c *Consumer[K, V]) Root() *Cursor[K, V] {
	return c.root
}

// ReadTree drains the whole stream into a tree built through b.
func (c *Consumer[K, V]) ReadTree(ctx context.Context, b *tree.Builder[K, V]) (tree.Tree[K, V], error) {
	return c.root.ReadTree(ctx, b)
}

// Cursor is a lazy view over one node of the streamed tree. Each Next call
// takes exactly one event (plus whatever an unfinished child still owes);
// subtrees the consumer does not enter are never buffered beyond the one
// event in flight. A Cursor is owned by one goroutine.
type Cursor[K comparable, V any] struct {
	slot   *handoff.Slot[Event[K, V]]
	root   bool
	val    V
	hasVal bool
	done   bool
	child  *Cursor[K, V]
}

// Next advances to the node's next child, returning its key and a cursor
// into it, or false once the layer has ended. An unfinished child cursor
// from a previous call is drained first. Value events encountered on the
// way are recorded on this cursor; a second one fails with a
// ProtocolError.
func (c *Cursor[K, V]) Next(ctx context.Context) (K, *Cursor[K, V], bool, error) {
	var zero K
	if c.done {
		return zero, nil, false, nil
	}
	if c.child != nil && !c.child.done {
		if err := c.child.Skip(ctx); err != nil {
			return zero, nil, false, err
		}
	}
	c.child = nil
	for {
		ev, err := c.slot.Take(ctx)
		if err != nil {
			if errors.Is(err, handoff.ErrClosed) {
				if c.root {
					c.done = true
					return zero, nil, false, nil
				}
				return zero, nil, false, &ProtocolError{Msg: "stream closed inside open layer"}
			}
			return zero, nil, false, err
		}
		switch ev.Kind {
		case KindValue:
			if c.hasVal {
				return zero, nil, false, &ProtocolError{Msg: "second value for one node"}
			}
			c.val, c.hasVal = ev.Value, true
		case KindKey:
			cc := &Cursor[K, V]{slot: c.slot}
			c.child = cc
			return ev.Key, cc, true, nil
		case KindEnd:
			c.done = true
			return zero, nil, false, nil
		}
	}
}

// Value returns the node's value as seen so far. It is final once the
// layer has ended (Next returned false or Skip completed).
func (c *Cursor[K, V]) Value() (V, bool) {
	return c.val, c.hasVal
}

// Done reports whether the layer has ended.
func (c *Cursor[K, V]) Done() bool {
	return c.done
}

// Skip drains the rest of this layer, including any nested children.
func (c *Cursor[K, V]) Skip(ctx context.Context) error {
	for !c.done {
		_, _, ok, err := c.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}

// ReadTree materializes the rest of this layer as a tree built through b.
func (c *Cursor[K, V]) ReadTree(ctx context.Context, b *tree.Builder[K, V]) (tree.Tree[K, V], error) {
	var entries []tree.Entry[K, V]
	for {
		key, child, ok, err := c.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		sub, err := child.ReadTree(ctx, b)
		if err != nil {
			return nil, err
		}
		entries = append(entries, tree.Entry[K, V]{Key: key, Sub: sub})
	}
	var val *V
	if c.hasVal {
		v := c.val
		val = &v
	}
	return b.Build(val, entries, tree.NoDefault[K, V]()), nil
}
