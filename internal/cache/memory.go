package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	value     json.RawMessage
	expiresAt time.Time
}

// Memory is the in-process Store. Expiry is checked lazily on read; stale
// entries are overwritten by the next Set. There is no capacity bound — the
// key space (currency/page/coin-id combinations) is small.
type Memory struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an in-memory Store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(ctx context.Context, key string, value json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
