package stream

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/keytree-io/keytree/handoff"
)

// Bridge holds the two ends of a producer/consumer pair over one slot
// plus the producer's completion signal.
type Bridge[K comparable, V any] struct {
	consumer *Consumer[K, V]
	wg       conc.WaitGroup
	err      error
}

// Run starts produce on its own goroutine, feeding a consumer through a
// fresh single-slot channel. The slot is closed when produce returns, so
// the consumer's root layer terminates. Wait must be called to observe
// the producer's error; a panic in produce is caught by the goroutine
// group and re-thrown from Wait.
func Run[K comparable, V any](ctx context.Context, produce func(ctx context.Context, p *Producer[K, V]) error) *Bridge[K, V] {
	slot := handoff.New[Event[K, V]]()
	b := &Bridge[K, V]{consumer: NewConsumer(slot)}
	p := NewProducer(slot)
	b.wg.Go(func() {
		defer p.Close()
		b.err = produce(ctx, p)
	})
	return b
}

// Consumer returns the pulling end.
func (b *Bridge[K, V]) Consumer() *Consumer[K, V] {
	return b.consumer
}

// Wait blocks until the producer goroutine has exited and returns its
// error.
func (b *Bridge[K, V]) Wait() error {
	b.wg.Wait()
	return b.err
}
