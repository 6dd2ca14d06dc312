package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	ps := NewPubSub(8)
	ctx := context.Background()

	ch, cancel, err := ps.Subscribe(ctx, "battle:1")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, ps.Publish(ctx, "battle:1", "hello"))
	select {
	case msg := <-ch:
		assert.Equal(t, "battle:1", msg.Channel)
		assert.Equal(t, "hello", msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestUnrelatedChannelNotDelivered(t *testing.T) {
	ps := NewPubSub(8)
	ctx := context.Background()

	ch, cancel, err := ps.Subscribe(ctx, "battle:1")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, ps.Publish(ctx, "battle:2", "other"))
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelClosesChannel(t *testing.T) {
	ps := NewPubSub(8)
	ch, cancel, err := ps.Subscribe(context.Background(), "battle:1")
	require.NoError(t, err)

	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)
	// Publishing after cancel must not panic.
	require.NoError(t, ps.Publish(context.Background(), "battle:1", "late"))
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	ps := NewPubSub(1)
	ctx := context.Background()
	ch, cancel, err := ps.Subscribe(ctx, "c")
	require.NoError(t, err)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = ps.Publish(ctx, "c", "m")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
	assert.Len(t, ch, 1)
}
