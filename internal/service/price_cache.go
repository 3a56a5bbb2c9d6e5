package service

import (
	"context"
	"sync"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
)

const DefaultPriceCacheTTL = 60 * time.Second

// PriceCache holds the latest snapshot per asset.
//
// The slot map is guarded by an RWMutex and each slot by its own mutex, so
// writers of different assets never contend. Entries are replaced whole.
type PriceCache struct {
	mu    sync.RWMutex
	slots map[string]*priceSlot
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

type priceSlot struct {
	mu   sync.Mutex
	snap domain.PriceSnapshot
	set  bool
}

// PriceCacheOption configures a PriceCache.
type PriceCacheOption func(*PriceCache)

// WithClock replaces the wall clock used for freshness checks.
func WithClock(now func() time.Time) PriceCacheOption {
	return func(c *PriceCache) { c.now = now }
}

// NewPriceCache creates an empty cache. A non-positive ttl selects DefaultPriceCacheTTL.
func NewPriceCache(ttl time.Duration, log zerolog.Logger, opts ...PriceCacheOption) *PriceCache {
	if ttl <= 0 {
		ttl = DefaultPriceCacheTTL
	}
	c := &PriceCache{
		slots: make(map[string]*priceSlot),
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *PriceCache) TTL() time.Duration { return c.ttl }

// Now returns the cache clock's current time.
func (c *PriceCache) Now() time.Time { return c.now() }

// Get returns the snapshot held for asset, fresh or not.
func (c *PriceCache) Get(asset string) (domain.PriceSnapshot, bool) {
	c.mu.RLock()
	slot, ok := c.slots[domain.NormalizeAsset(asset)]
	c.mu.RUnlock()
	if !ok {
		return domain.PriceSnapshot{}, false
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.snap, slot.set
}

// Put stores snap unless the cache already holds a newer one for the asset.
// It reports whether snap was stored.
func (c *PriceCache) Put(snap domain.PriceSnapshot) bool {
	snap.Asset = domain.NormalizeAsset(snap.Asset)
	if err := snap.Validate(); err != nil {
		c.log.Warn().Err(err).Str("asset", snap.Asset).Msg("refusing invalid price snapshot")
		return false
	}

	slot := c.slot(snap.Asset)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.set && snap.FetchedAt.Before(slot.snap.FetchedAt) {
		return false
	}
	slot.snap = snap
	slot.set = true
	return true
}

// IsFresh reports whether snap is younger than the TTL at now.
// A snapshot exactly TTL old is stale.
func (c *PriceCache) IsFresh(snap domain.PriceSnapshot, now time.Time) bool {
	return snap.IsFresh(now, c.ttl)
}

// Warm loads mirrored snapshots for assets. Mirror errors are logged and
// skipped; it returns how many snapshots were loaded.
func (c *PriceCache) Warm(ctx context.Context, mirror ports.PriceMirror, assets []string) int {
	if mirror == nil {
		return 0
	}
	loaded := 0
	for _, asset := range normalizeAssets(assets) {
		snap, err := mirror.Load(ctx, asset)
		if err != nil {
			c.log.Warn().Err(err).Str("asset", asset).Msg("price mirror load failed, skipping")
			continue
		}
		if snap == nil {
			continue
		}
		if c.Put(*snap) {
			loaded++
		}
	}
	c.log.Info().Int("loaded", loaded).Msg("price cache warmed from mirror")
	return loaded
}

func (c *PriceCache) slot(asset string) *priceSlot {
	c.mu.RLock()
	slot, ok := c.slots[asset]
	c.mu.RUnlock()
	if ok {
		return slot
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if slot, ok = c.slots[asset]; !ok {
		slot = &priceSlot{}
		c.slots[asset] = slot
	}
	return slot
}
