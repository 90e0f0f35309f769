package cache

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestMemory_GetAfterSet(t *testing.T) {
	m := NewMemory(60 * time.Second)
	ctx := context.Background()

	payload := json.RawMessage(`[{"id":"bitcoin"}]`)
	m.Set(ctx, "markets-usd-1", payload)

	got, ok := m.Get(ctx, "markets-usd-1")
	if !ok {
		t.Fatal("expected hit within TTL")
	}
	if string(got) != string(payload) {
		t.Errorf("expected %s, got %s", payload, got)
	}
}

func TestMemory_MissOnUnknownKey(t *testing.T) {
	m := NewMemory(60 * time.Second)

	if _, ok := m.Get(context.Background(), "coin-bitcoin"); ok {
		t.Error("expected miss for never-set key")
	}
}

func TestMemory_ExpiresAfterTTL(t *testing.T) {
	m := NewMemory(20 * time.Millisecond)
	ctx := context.Background()

	m.Set(ctx, "news", json.RawMessage(`[]`))

	if _, ok := m.Get(ctx, "news"); !ok {
		t.Fatal("expected hit before TTL elapsed")
	}

	time.Sleep(40 * time.Millisecond)

	if _, ok := m.Get(ctx, "news"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestMemory_SetOverwritesAndResetsExpiry(t *testing.T) {
	m := NewMemory(50 * time.Millisecond)
	ctx := context.Background()

	m.Set(ctx, "coin-bitcoin", json.RawMessage(`{"v":1}`))
	time.Sleep(30 * time.Millisecond)
	m.Set(ctx, "coin-bitcoin", json.RawMessage(`{"v":2}`))
	time.Sleep(30 * time.Millisecond)

	// 60ms after the first write, but only 30ms after the overwrite.
	got, ok := m.Get(ctx, "coin-bitcoin")
	if !ok {
		t.Fatal("expected overwrite to reset expiry")
	}
	if string(got) != `{"v":2}` {
		t.Errorf("expected overwritten value, got %s", got)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Set(ctx, "shared", json.RawMessage(`{"hot":true}`))
				m.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	if m.Len() != 1 {
		t.Errorf("expected a single key, got %d", m.Len())
	}
}
