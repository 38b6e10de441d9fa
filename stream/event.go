// Package stream bridges an imperative push/pull event producer and a
// consumer that lazily materializes the described tree, without the two
// sharing a call stack and without buffering more than one event.
//
// A producer describes a tree through three primitives: Push(key) descends
// into a new child, PullValue(v) assigns the current node's value, and
// Pull() ascends to the parent. Events travel one at a time through a
// handoff.Slot; ordering is exactly FIFO and nesting depth matches the
// push/pull nesting. Producer and consumer are two independent goroutines
// synchronized only by the slot: cancelling either context unblocks that
// side promptly, but neither side is notified when the peer exits —
// callers arrange their own shutdown handshake.
package stream

// Kind is the tag of a structural event.
type Kind int

const (
	// KindKey descends into a new child under Key.
	KindKey Kind = iota
	// KindValue assigns the current node's value.
	KindValue
	// KindEnd terminates the current layer, ascending to the parent.
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "Key"
	case KindValue:
		return "Value"
	case KindEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Event is one structural event. Only the field selected by Kind is set.
type Event[K comparable, V any] struct {
	Kind  Kind
	Key   K
	Value V
}
