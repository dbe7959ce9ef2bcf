package domain

import "context"

// CacheInvalidator signals that cached renders for an event's public display
// path are stale. The signal is best effort: absence or failure degrades
// freshness until the next poll, never correctness.
type CacheInvalidator interface {
	MarkStale(ctx context.Context, eventSlug string) error
}

// RenderCache caches the public (projector) render payload per event slug.
// Get reports a miss with ok=false; both operations are best effort.
type RenderCache interface {
	Get(ctx context.Context, eventSlug string) (payload []byte, ok bool)
	Set(ctx context.Context, eventSlug string, payload []byte)
}
