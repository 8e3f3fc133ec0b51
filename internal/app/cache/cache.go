// Package cache keeps probe metadata so repeated /info calls for the same
// video do not spawn yt-dlp again.
package cache

import (
	"context"
	"time"

	"yt2t/internal/app/model"
)

// DefaultTTL replaces a non-positive TTL in every backend. Entries never live
// forever and never expire on write.
const DefaultTTL = time.Hour

func effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

// Cache stores VideoMetadata by key. Implementations treat backend errors as
// misses and never fail the caller.
type Cache interface {
	Get(ctx context.Context, key string) (model.VideoMetadata, bool)
	Set(ctx context.Context, key string, meta model.VideoMetadata)
	Close() error
}

// Key returns the cache key for a video id.
func Key(videoID string) string {
	return "yt2t:meta:" + videoID
}
