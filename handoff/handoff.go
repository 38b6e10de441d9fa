// Package handoff implements a single-slot channel: a synchronization
// primitive holding at most one in-flight item. Put fills the slot and
// blocks while it is full; Take drains it and blocks while it is empty.
// It is the minimal decoupling a one-producer/one-consumer pair needs and
// is reusable anywhere a one-deep handoff suffices.
package handoff

import (
	"context"
	"errors"
)

// ErrClosed is returned by Take once the slot is closed and drained, and
// by Put on a closed slot.
var ErrClosed = errors.New("slot closed")

// Slot is the single-slot channel. The zero value is not usable; call New.
//
// State machine: Empty --Put--> Full --Take--> Empty. Both operations are
// cancellable through their context and return promptly on cancellation
// without deadlocking the peer. There are no timeouts; a stalled peer
// blocks the other indefinitely.
type Slot[T any] struct {
	ch   chan T
	done chan struct{}
}

// New returns an empty slot.
func New[T any]() *Slot[T] {
	return &Slot[T]{
		ch:   make(chan T, 1),
		done: make(chan struct{}),
	}
}

// Put places v in the slot, blocking while the slot is full. Put on a
// closed slot fails with ErrClosed even when the slot has room.
func (s *Slot[T]) Put(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// checked first: the blocking select would pick randomly between an
	// empty slot and a closed one
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.ch <- v:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Take removes and returns the slot's item, blocking while the slot is
// empty. Once the slot is closed and drained, Take returns ErrClosed.
func (s *Slot[T]) Take(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	select {
	case v := <-s.ch:
		return v, nil
	default:
	}
	select {
	case v := <-s.ch:
		return v, nil
	case <-s.done:
		// drain an item racing with Close
		select {
		case v := <-s.ch:
			return v, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TryPut places v only if the slot is empty, reporting whether it did.
func (s *Slot[T]) TryPut(v T) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// TryTake removes the item only if the slot is full.
func (s *Slot[T]) TryTake() (T, bool) {
	select {
	case v := <-s.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Close marks the slot closed. An item already in the slot can still be
// taken; further Puts fail with ErrClosed. Close is idempotent only for
// one caller; the producing side owns it.
func (s *Slot[T]) Close() {
	close(s.done)
}
