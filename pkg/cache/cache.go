// Package cache stores rendered panel artifacts and imported datasets.
//
// # Overview
//
// Rendering a dashboard re-reads every data file and redraws every panel.
// The [Cache] interface lets the pipeline skip both when nothing changed:
// keys are derived from content hashes (see [Keyer]), so a changed data
// file or panel definition naturally misses.
//
// Implementations:
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for teams rendering the same
//     dashboards
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Every implementation reports hits and misses through
// [observability.CacheHooks] when wrapped with [Observed].
//
// [observability.CacheHooks]: github.com/matzehuels/chartkit/pkg/observability.CacheHooks
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/chartkit/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Observed wraps c so lookups are reported to the registered cache hooks.
func Observed(c Cache) Cache { return &observed{Cache: c} }

type observed struct{ Cache }

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func (o *observed) Clear(ctx context.Context) error {
	if c, ok := o.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return nil
}

// keyType returns the kind segment of a key, such as "artifact" in
// "artifact:ab12...". Scoped prefixes are skipped.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	for i := len(parts) - 2; i >= 0; i-- {
		switch parts[i] {
		case kindArtifact, kindDataset:
			return parts[i]
		}
	}
	return parts[0]
}
