package stream

import (
	"context"

	"github.com/keytree-io/keytree/debug"
	"github.com/keytree-io/keytree/handoff"
)

// Producer is the pushing end of the bridge. Each call forwards exactly
// one event through the slot and blocks until the consumer has room for
// it. A Producer is owned by one goroutine.
type Producer[K comparable, V any] struct {
	slot *handoff.Slot[Event[K, V]]
}

// NewProducer returns a producer feeding slot.
func NewProducer[K comparable, V any](slot *handoff.Slot[Event[K, V]]) *Producer[K, V] {
	return &Producer[K, V]{slot: slot}
}

// Push descends into a new child under key.
func (p *Producer[K, V]) Push(ctx context.Context, key K) error {
	return p.send(ctx, Event[K, V]{Kind: KindKey, Key: key})
}

// PullValue assigns the current node's value.
func (p *Producer[K, V]) PullValue(ctx context.Context, v V) error {
	return p.send(ctx, Event[K, V]{Kind: KindValue, Value: v})
}

// Pull ends the current layer, ascending to the parent.
func (p *Producer[K, V]) Pull(ctx context.Context) error {
	return p.send(ctx, Event[K, V]{Kind: KindEnd})
}

func (p *Producer[K, V]) send(ctx context.Context, ev Event[K, V]) error {
	if debug.Stream() {
		debug.Logf("stream: produce %s\n", ev.Kind)
	}
	return p.slot.Put(ctx, ev)
}

// Close marks the event stream complete. The consumer's root layer ends
// once the last event has been taken.
func (p *Producer[K, V]) Close() {
	p.slot.Close()
}
