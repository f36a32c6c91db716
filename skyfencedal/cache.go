package skyfencedal

import (
	"context"
	"sync"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/skyfence/skyfence-app/skyfence"
)

// ZoneCache wraps a ZoneProvider and serves its zones from memory until
// the injected TTL elapses, after which the next GetZones refetches. It
// replaces hidden module-level caches: the cache is an explicit object the
// caller constructs, owns, and invalidates.
//
// A fetch that fails while a stale copy exists propagates the error; the
// caller decides whether to degrade, the cache never silently serves
// expired data.
type ZoneCache struct {
	provider ZoneProvider
	ttl      time.Duration
	nowFunc  func() time.Time

	mu        *sync.RWMutex
	zones     []*skyfence.ZoneFeature
	primed    bool
	fetchedAt time.Time
}

func NewZoneCache(provider ZoneProvider, ttl time.Duration) *ZoneCache {
	return &ZoneCache{
		provider: provider,
		ttl:      ttl,
		nowFunc:  time.Now,
		mu:       new(sync.RWMutex),
	}
}

func (c *ZoneCache) Name() string {
	return c.provider.Name()
}

func (c *ZoneCache) GetZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error) {
	c.mu.RLock()
	zones, usable := c.zones, c.primed && c.fresh()
	c.mu.RUnlock()

	if usable {
		return zones, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another caller may have refetched while we waited for the lock
	if c.primed && c.fresh() {
		return c.zones, nil
	}

	fetched, err := c.provider.GetZones(ctx)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	c.zones = fetched
	c.primed = true
	c.fetchedAt = c.nowFunc()
	return fetched, nil
}

// Invalidate drops the cached copy; the next GetZones refetches
// regardless of TTL.
func (c *ZoneCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zones = nil
	c.primed = false
	c.fetchedAt = time.Time{}
}

func (c *ZoneCache) fresh() bool {
	return c.nowFunc().Sub(c.fetchedAt) < c.ttl
}
