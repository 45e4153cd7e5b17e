// Package cache holds rendered response bodies for a bounded time. It is a
// generic keyed cache; the home timeline uses a single key and accepts
// stale reads until the TTL runs out or Clear is called.
package cache

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

type RenderCache struct {
	entries cmap.ConcurrentMap[string, entry]
}

func New() *RenderCache {
	return &RenderCache{entries: cmap.New[entry]()}
}

// GetOrCompute returns the cached body for key while it is fresh; otherwise
// it runs compute, stores the result for ttl and returns it. The second
// return value reports a cache hit. A compute error caches nothing.
func (rc *RenderCache) GetOrCompute(key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if e, ok := rc.entries.Get(key); ok && time.Now().Before(e.expiresAt) {
		return e.body, true, nil
	}
	body, err := compute()
	if err != nil {
		return nil, false, err
	}
	rc.entries.Set(key, entry{body: body, expiresAt: time.Now().Add(ttl)})
	return body, false, nil
}

// Clear drops every cached body immediately, bypassing the TTL
func (rc *RenderCache) Clear() {
	rc.entries.Clear()
}
