package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRenderCache caches the public projector render payload per event slug
// and serves as the stale-marking signal for stage config writes. All
// operations are best effort: with a nil client or an unreachable server the
// cache degrades to a permanent miss and the display falls back to fresh
// reads on every poll.
type RedisRenderCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisRenderCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisRenderCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisRenderCache{rdb: rdb, ttl: ttl, logger: logger}
}

func renderKey(slug string) string {
	return "wall:render:" + slug
}

func (c *RedisRenderCache) Get(ctx context.Context, eventSlug string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, renderKey(eventSlug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.DebugContext(ctx, "render cache get failed", "event_slug", eventSlug, "err", err)
		}
		return nil, false
	}
	return bs, true
}

func (c *RedisRenderCache) Set(ctx context.Context, eventSlug string, payload []byte) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.SetEx(ctx, renderKey(eventSlug), payload, c.ttl).Err(); err != nil {
		c.logger.DebugContext(ctx, "render cache set failed", "event_slug", eventSlug, "err", err)
	}
}

// MarkStale drops the cached render so the next poll reflects a config
// write. The TTL bounds staleness even when this signal is lost.
func (c *RedisRenderCache) MarkStale(ctx context.Context, eventSlug string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, renderKey(eventSlug)).Err()
}
