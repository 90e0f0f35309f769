// Package cache provides the time-bounded response cache that sits in front
// of the upstream market-data and news calls. Entries live for a fixed TTL
// from insertion; an expired key and an absent key are the same miss.
//
// There is deliberately no single-flight de-duplication: concurrent requests
// for a cold key may all fetch upstream, and every write is a full overwrite
// of one key.
package cache

import (
	"context"
	"encoding/json"
)

// Store is the response cache consulted by the coin proxy routes.
type Store interface {
	// Get returns the cached payload for key, or false on a miss.
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	// Set stores value under key and resets its expiry to now+TTL,
	// overwriting any prior entry.
	Set(ctx context.Context, key string, value json.RawMessage)
}
