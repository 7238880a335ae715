package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"payhold/internal/model"
)

func TestMemoryCachePutGet(t *testing.T) {
	c := NewMemoryCache(10, time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("hit on empty cache")
	}

	want := Entry{Status: model.SettleSuccess, Message: "committed", ReservationID: "rid-1"}
	c.Put(ctx, "key-1", want)

	got, ok := c.Get(ctx, "key-1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMemoryCacheEvictsUnderPressure(t *testing.T) {
	c := NewMemoryCache(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		c.Put(ctx, fmt.Sprintf("key-%d", i), Entry{Status: model.SettleSuccess})
	}

	// Oldest entries are gone, newest survive.
	if _, ok := c.Get(ctx, "key-0"); ok {
		t.Fatal("key-0 should have been evicted")
	}
	if _, ok := c.Get(ctx, "key-4"); !ok {
		t.Fatal("key-4 should still be present")
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(10, 20*time.Millisecond)
	ctx := context.Background()

	c.Put(ctx, "key-1", Entry{Status: model.SettleSuccess})
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get(ctx, "key-1"); ok {
		t.Fatal("entry survived past its TTL")
	}
}

func TestMemoryCacheDefaults(t *testing.T) {
	c := NewMemoryCache(0, 0)
	ctx := context.Background()

	c.Put(ctx, "key-1", Entry{Status: model.SettleReplay})
	if _, ok := c.Get(ctx, "key-1"); !ok {
		t.Fatal("cache with defaulted size/ttl dropped a fresh entry")
	}
}
