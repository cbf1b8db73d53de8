package invalidation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesMatchingSubscriber(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("account_entries")
	defer sub.Close()

	bus.Publish("account_entries")

	select {
	case table := <-sub.C():
		assert.Equal(t, "account_entries", table)
	case <-time.After(time.Second):
		t.Fatal("expected an invalidation signal")
	}
}

func TestPublishSkipsUnrelatedTables(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("categories")
	defer sub.Close()

	bus.Publish("account_entries")

	select {
	case table := <-sub.C():
		t.Fatalf("unexpected signal for table %q", table)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscriptionWatchesMultipleTables(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("account_entries", "attachments")
	defer sub.Close()

	bus.Publish("attachments")

	select {
	case table := <-sub.C():
		assert.Equal(t, "attachments", table)
	case <-time.After(time.Second):
		t.Fatal("expected an invalidation signal")
	}
}

func TestPublishNeverBlocksOnSlowReader(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("account_entries")
	defer sub.Close()

	// Nobody is draining the channel; repeated publishes must coalesce.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish("account_entries")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on an unconsumed subscription")
	}

	// Exactly one coalesced signal remains.
	table, ok := <-sub.C()
	require.True(t, ok)
	assert.Equal(t, "account_entries", table)
	select {
	case table := <-sub.C():
		t.Fatalf("expected coalesced signals, got a second one for %q", table)
	default:
	}
}

func TestCloseStopsDeliveryAndIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("account_entries")

	sub.Close()
	sub.Close() // must not panic

	// Publishing after close must not panic either.
	bus.Publish("account_entries")

	_, ok := <-sub.C()
	assert.False(t, ok, "channel should be closed")
}
