package events

import (
	"sync"

	"github.com/vaultlens/vaultlens/internal/domain"
)

// RefreshBroadcaster fans out completed enrichment runs to subscribers
// via buffered channels. Slow readers drop events rather than blocking
// the collector loop.
type RefreshBroadcaster struct {
	mu     sync.RWMutex
	subs   map[chan domain.RunSnapshot]struct{}
	buffer int
}

// NewRefreshBroadcaster creates a broadcaster with the given
// per-subscriber buffer.
func NewRefreshBroadcaster(buffer int) *RefreshBroadcaster {
	if buffer < 1 {
		buffer = 16
	}
	return &RefreshBroadcaster{
		subs:   make(map[chan domain.RunSnapshot]struct{}),
		buffer: buffer,
	}
}

// Publish sends the snapshot to all subscribers, dropping for slow readers.
func (b *RefreshBroadcaster) Publish(snapshot domain.RunSnapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- snapshot:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel receiving snapshots until Unsubscribe.
func (b *RefreshBroadcaster) Subscribe() chan domain.RunSnapshot {
	ch := make(chan domain.RunSnapshot, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (b *RefreshBroadcaster) Unsubscribe(ch chan domain.RunSnapshot) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
