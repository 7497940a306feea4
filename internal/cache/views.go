// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// views.go provides a Valkey-backed cache for serialized read views.
// When a public read endpoint assembles its JSON response, the payload is
// stored in Valkey so subsequent requests skip the store query and the
// relation hydration entirely. Any write invalidates the whole namespace,
// since categories, tags and posts are all served from one document.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// viewKeyPrefix is the Valkey key prefix for cached views.
	viewKeyPrefix = "view:"

	// DefaultViewTTL is how long a serialized view stays cached.
	DefaultViewTTL = 5 * time.Minute
)

// ViewCache manages read-view payload caching in Valkey. A nil *ViewCache
// is valid and behaves as a cache that always misses, so callers do not
// need to branch on whether Valkey is configured.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a new view cache backed by the given Valkey client.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl == 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload for a view key.
func (vc *ViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if vc == nil {
		return nil, false
	}
	val, err := vc.client.Get(ctx, viewKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("view cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("view cache hit", "key", key)
	return val, true
}

// Set stores a serialized payload for a view key with the configured TTL.
func (vc *ViewCache) Set(ctx context.Context, key string, payload []byte) {
	if vc == nil {
		return
	}
	if err := vc.client.Set(ctx, viewKeyPrefix+key, payload, vc.ttl).Err(); err != nil {
		slog.Warn("view cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached views by scanning for the prefix.
// Every mutation goes through here: a new post can change the overview,
// its category view and every tag view it touches.
func (vc *ViewCache) InvalidateAll(ctx context.Context) {
	if vc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := vc.client.Scan(ctx, cursor, viewKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("view cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := vc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("view cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("view cache fully cleared", "deleted", deleted)
	}
}

// OverviewKey returns the cache key for the full overview payload.
func OverviewKey() string {
	return "_overview"
}

// CategoryKey returns the cache key for a category view by slug.
func CategoryKey(slug string) string {
	return fmt.Sprintf("category:%s", slug)
}

// TagKey returns the cache key for a tag view by slug.
func TagKey(slug string) string {
	return fmt.Sprintf("tag:%s", slug)
}

// PostKey returns the cache key for a single post view.
func PostKey(id int) string {
	return fmt.Sprintf("post:%d", id)
}
