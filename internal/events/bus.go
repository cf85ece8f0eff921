package events

import (
	"sync"
)

// Change describes one committed mutation. Subscribers re-run their
// queries when they see a change touching a table they depend on.
type Change struct {
	Table  string `json:"table"`  // "inventory", "sales", "users"
	Action string `json:"action"` // "created", "updated", "deleted"
	UserID string `json:"user_id,omitempty"`
}

// Bus fans committed changes out to subscribers. It replaces the
// ambient live-query machinery with an explicit subscription: store
// mutation publishes, subscribed views recompute.
type Bus struct {
	mu   sync.Mutex
	subs map[chan Change]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[chan Change]struct{})}
}

// Subscribe returns a channel of future changes. The caller must
// Unsubscribe when its view tears down.
func (b *Bus) Subscribe() chan Change {
	ch := make(chan Change, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Bus) Unsubscribe(ch chan Change) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers a change to every subscriber. A subscriber whose
// buffer is full drops the event rather than stalling the writer; a
// dropped notification only delays the next recompute.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Default is the process-wide bus the handlers publish to.
var Default = NewBus()
