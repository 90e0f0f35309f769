package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("cache.redis")

// Redis is a Store backed by a shared Redis instance, for deployments
// running more than one replica. TTL enforcement is delegated to Redis key
// expiry. Errors degrade to cache misses; the route then fetches upstream.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis creates a Redis-backed Store with the given TTL.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	ctx, span := tracer.Start(ctx, "Cache.Get")
	defer span.End()

	value, err := r.rdb.Get(ctx, "cache:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value json.RawMessage) {
	ctx, span := tracer.Start(ctx, "Cache.Set")
	defer span.End()

	if err := r.rdb.Set(ctx, "cache:"+key, []byte(value), r.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
