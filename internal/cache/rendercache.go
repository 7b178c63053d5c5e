// Package cache implements the server-side render cache and its on-demand
// invalidation. Cached payloads are keyed by logical path; tags group paths
// so a content edit can invalidate every render that used a document.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KnownPaths is the fixed set of top-level site paths an "all" invalidation
// covers.
var KnownPaths = []string{"/", "/about", "/projects", "/contact"}

const (
	renderPrefix = "render:"
	tagPrefix    = "tag:"
)

// DefaultTTL bounds how stale a cached render may get without an explicit
// revalidation, mirroring the site's background refresh interval.
const DefaultTTL = 60 * time.Second

// RenderCache stores rendered payloads in Redis.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a render cache. A zero ttl uses DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *RenderCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

// Put stores the payload for a path and registers it under the given tags.
func (c *RenderCache) Put(ctx context.Context, path string, payload []byte, tags ...string) error {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, renderPrefix+path, payload, c.ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagPrefix+tag, path)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache put %s: %w", path, err)
	}
	return nil
}

// Get returns the cached payload for a path, with ok=false on a miss.
func (c *RenderCache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, renderPrefix+path).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", path, err)
	}
	return payload, true, nil
}

// InvalidatePaths drops the cached renders for the given paths and returns
// the paths that were processed.
func (c *RenderCache) InvalidatePaths(ctx context.Context, paths []string) ([]string, error) {
	invalidated := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := c.client.Del(ctx, renderPrefix+path).Err(); err != nil {
			return invalidated, fmt.Errorf("invalidate path %s: %w", path, err)
		}
		invalidated = append(invalidated, path)
	}
	return invalidated, nil
}

// InvalidateTags drops every cached render registered under the given tags,
// then the tag sets themselves. Returns the tags that were processed.
func (c *RenderCache) InvalidateTags(ctx context.Context, tags []string) ([]string, error) {
	invalidated := make([]string, 0, len(tags))
	for _, tag := range tags {
		paths, err := c.client.SMembers(ctx, tagPrefix+tag).Result()
		if err != nil {
			return invalidated, fmt.Errorf("invalidate tag %s: %w", tag, err)
		}
		for _, path := range paths {
			if err := c.client.Del(ctx, renderPrefix+path).Err(); err != nil {
				return invalidated, fmt.Errorf("invalidate tag %s path %s: %w", tag, path, err)
			}
		}
		if err := c.client.Del(ctx, tagPrefix+tag).Err(); err != nil {
			return invalidated, fmt.Errorf("drop tag %s: %w", tag, err)
		}
		invalidated = append(invalidated, tag)
	}
	return invalidated, nil
}

// InvalidateAll drops the cached renders for every known top-level path.
func (c *RenderCache) InvalidateAll(ctx context.Context) ([]string, error) {
	return c.InvalidatePaths(ctx, KnownPaths)
}

// Ping verifies cache connectivity.
func (c *RenderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
