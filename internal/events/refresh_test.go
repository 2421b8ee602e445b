package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultlens/vaultlens/internal/domain"
)

func TestRefreshBroadcaster(t *testing.T) {
	t.Run("delivers to all subscribers", func(t *testing.T) {
		b := NewRefreshBroadcaster(4)
		first := b.Subscribe()
		second := b.Subscribe()
		defer b.Unsubscribe(first)
		defer b.Unsubscribe(second)

		b.Publish(domain.RunSnapshot{RunID: "run-1", ChainID: "137"})

		for _, ch := range []chan domain.RunSnapshot{first, second} {
			select {
			case snap := <-ch:
				assert.Equal(t, "run-1", snap.RunID)
			case <-time.After(time.Second):
				t.Fatal("subscriber did not receive snapshot")
			}
		}
	})

	t.Run("drops when subscriber buffer is full", func(t *testing.T) {
		b := NewRefreshBroadcaster(1)
		ch := b.Subscribe()
		defer b.Unsubscribe(ch)

		b.Publish(domain.RunSnapshot{RunID: "run-1"})
		b.Publish(domain.RunSnapshot{RunID: "run-2"})

		snap := <-ch
		assert.Equal(t, "run-1", snap.RunID)

		select {
		case extra := <-ch:
			t.Fatalf("expected run-2 to be dropped, got %s", extra.RunID)
		default:
		}
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		b := NewRefreshBroadcaster(1)
		ch := b.Subscribe()
		b.Unsubscribe(ch)

		_, open := <-ch
		assert.False(t, open)

		// double unsubscribe is a no-op
		b.Unsubscribe(ch)
	})

	t.Run("publish without subscribers does not block", func(t *testing.T) {
		b := NewRefreshBroadcaster(1)
		done := make(chan struct{})
		go func() {
			b.Publish(domain.RunSnapshot{RunID: "run-1"})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked with no subscribers")
		}
	})
}

func TestRefreshBroadcasterDefaultBuffer(t *testing.T) {
	b := NewRefreshBroadcaster(0)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)
	require.Equal(t, 16, cap(ch))
}
