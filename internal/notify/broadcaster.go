// Package notify delivers the store's "changed" signal to interested parties:
// in-process subscribers, other processes over NATS, or both.
package notify

import (
	"context"
	"sync"

	"github.com/rpggio/okrboard/internal/domain/okr"
)

// Broadcaster fans a change signal out to in-process subscribers. Each
// subscriber channel has a buffer of one, so a slow reader sees bursts of
// changes coalesced into a single signal and Notify never blocks.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

var _ okr.Notifier = (*Broadcaster)(nil)

// NewBroadcaster returns a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan struct{})}
}

// Subscribe registers a listener. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Notify signals every subscriber.
func (b *Broadcaster) Notify(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len reports the number of subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Multi notifies each notifier in order. Nil entries are skipped.
type Multi []okr.Notifier

// Notify implements okr.Notifier.
func (m Multi) Notify(ctx context.Context) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx)
		}
	}
}
