// Package bus fans decoded inbound events out to named channels for bot
// scripts. Channels are the six known message kinds; emission is
// synchronous, unbuffered, and has no replay for late subscribers.
package bus

import (
	"fmt"
	"sync"

	"github.com/linehub/line-adapter-go/internal/event"
)

// Handler receives one emitted event: who sent it, the reply token it
// carries, and the decoded payload.
type Handler func(sourceID, replyToken string, payload event.Payload)

type subscription struct {
	id uint64
	fn Handler
}

// Bus is an instance-scoped subscriber registry keyed by event kind.
// It is safe for concurrent use; handlers registered before an emission
// are notified synchronously within the same processing pass.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[event.Kind][]subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subs: make(map[event.Kind][]subscription, len(event.Kinds())),
	}
}

// Subscribe registers fn on one of the six known channels and returns an
// unsubscribe func. Unknown kinds (including "unknown" itself: those
// events take the generic receive path only) and nil handlers error.
func (b *Bus) Subscribe(kind event.Kind, fn Handler) (func(), error) {
	if !kind.Known() {
		return nil, fmt.Errorf("subscribe: unknown event channel %q", kind)
	}
	if fn == nil {
		return nil, fmt.Errorf("subscribe: nil handler for channel %q", kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	return func() { b.unsubscribe(kind, id) }, nil
}

func (b *Bus) unsubscribe(kind event.Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit notifies the channel's subscribers in registration order.
// The subscriber list is snapshotted under the lock and notified outside
// it, so a handler may subscribe or unsubscribe without deadlocking or
// invalidating the pass. Emission on a kind with no subscribers is a no-op.
func (b *Bus) Emit(kind event.Kind, sourceID, replyToken string, payload event.Payload) {
	if !kind.Known() {
		return
	}

	b.mu.RLock()
	snapshot := make([]subscription, len(b.subs[kind]))
	copy(snapshot, b.subs[kind])
	b.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(sourceID, replyToken, payload)
	}
}

// SubscriberCount returns the number of subscribers on a channel.
func (b *Bus) SubscriberCount(kind event.Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[kind])
}
