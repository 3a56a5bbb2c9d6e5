package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
)

// PriceFeed serves prices from the cache and refreshes them through the price
// chain. An asset already being fetched is joined rather than fetched again,
// and a fetch nobody waits for any more is cancelled.
type PriceFeed struct {
	chain  *PriceChain
	cache  *PriceCache
	mirror ports.PriceMirror        // optional
	tokens ports.TokenPriceProvider // optional
	log    zerolog.Logger

	mu       sync.Mutex
	inflight map[string]*priceFlight // by cache key
}

// priceFlight is one upstream fetch shared by every caller waiting on any of
// its assets. waiters is guarded by PriceFeed.mu; snaps and err are set
// before done is closed.
type priceFlight struct {
	assets  []string
	cancel  context.CancelFunc
	waiters int
	done    chan struct{}
	snaps   map[string]domain.PriceSnapshot
	err     error
}

type fetchFunc func(ctx context.Context, keys []string) (map[string]domain.PriceSnapshot, error)

// PriceFeedOption configures a PriceFeed.
type PriceFeedOption func(*PriceFeed)

// WithTokenPrices enables ERC-20 pricing through p.
func WithTokenPrices(p ports.TokenPriceProvider) PriceFeedOption {
	return func(f *PriceFeed) { f.tokens = p }
}

// NewPriceFeed creates a PriceFeed. mirror may be nil.
func NewPriceFeed(chain *PriceChain, cache *PriceCache, mirror ports.PriceMirror, log zerolog.Logger, opts ...PriceFeedOption) *PriceFeed {
	f := &PriceFeed{
		chain:    chain,
		cache:    cache,
		mirror:   mirror,
		log:      log,
		inflight: make(map[string]*priceFlight),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Lookup returns a quote per asset. Fresh cache entries are served without
// network unless force is set. When a refresh fails, the cached snapshot is
// returned and marked stale if it is past the TTL. Assets with neither are
// absent from the map and the refresh error is returned alongside.
func (f *PriceFeed) Lookup(ctx context.Context, assets []string, force bool) (map[string]ports.PriceQuote, error) {
	return f.lookup(ctx, normalizeAssets(assets), force, f.chain.Fetch)
}

// LookupTokens prices ERC-20 contracts with the same cache and staleness rules
// as Lookup. Quotes are keyed by lower-case contract address. Without a token
// price provider it returns an empty map.
func (f *PriceFeed) LookupTokens(ctx context.Context, contracts []string, force bool) (map[string]ports.PriceQuote, error) {
	if f.tokens == nil || len(contracts) == 0 {
		return map[string]ports.PriceQuote{}, nil
	}
	keys := make([]string, 0, len(contracts))
	for _, c := range contracts {
		keys = append(keys, domain.TokenAsset(c))
	}
	keyed, err := f.lookup(ctx, normalizeAssets(keys), force, f.fetchTokens)

	quotes := make(map[string]ports.PriceQuote, len(keyed))
	for key, q := range keyed {
		quotes[domain.TokenContract(key)] = q
	}
	return quotes, err
}

// Refresh fetches assets from the price chain, stores the results in the
// cache and mirrors them. Assets already in flight are joined. Returning early
// on ctx cancellation leaves the fetch running for other waiters and cancels
// it once none are left.
func (f *PriceFeed) Refresh(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error) {
	return f.refresh(ctx, normalizeAssets(assets), f.chain.Fetch)
}

func (f *PriceFeed) lookup(ctx context.Context, keys []string, force bool, fetch fetchFunc) (map[string]ports.PriceQuote, error) {
	quotes := make(map[string]ports.PriceQuote, len(keys))
	now := f.cache.Now()

	var toFetch []string
	for _, key := range keys {
		if snap, ok := f.cache.Get(key); ok && !force && f.cache.IsFresh(snap, now) {
			quotes[key] = ports.PriceQuote{Snapshot: snap}
			continue
		}
		toFetch = append(toFetch, key)
	}
	if len(toFetch) == 0 {
		return quotes, nil
	}

	fetched, fetchErr := f.refresh(ctx, toFetch, fetch)

	// The cache may hold something newer than what this fetch returned.
	now = f.cache.Now()
	var missing bool
	for _, key := range toFetch {
		snap, ok := f.cache.Get(key)
		if !ok {
			snap, ok = fetched[key]
		}
		if !ok {
			missing = true
			continue
		}
		stale := !f.cache.IsFresh(snap, now)
		if _, got := fetched[key]; !got {
			f.log.Warn().Err(fetchErr).
				Str("asset", key).
				Time("fetched_at", snap.FetchedAt).
				Bool("stale", stale).
				Msg("price refresh failed, serving cached snapshot")
		}
		quotes[key] = ports.PriceQuote{Snapshot: snap, Stale: stale}
	}
	if missing {
		return quotes, fetchErr
	}
	return quotes, nil
}

func (f *PriceFeed) refresh(ctx context.Context, keys []string, fetch fetchFunc) (map[string]domain.PriceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return map[string]domain.PriceSnapshot{}, nil
	}

	flights := f.join(ctx, keys, fetch)
	for _, fl := range flights {
		select {
		case <-ctx.Done():
			f.leave(flights)
			return nil, ctx.Err()
		case <-fl.done:
		}
	}

	got := make(map[string]domain.PriceSnapshot)
	var firstErr error
	for _, fl := range flights {
		for key, snap := range fl.snaps {
			got[key] = snap
		}
		if firstErr == nil {
			firstErr = fl.err
		}
	}

	// A joined flight may cover assets this caller did not ask for.
	out := make(map[string]domain.PriceSnapshot, len(keys))
	var missing []string
	for _, key := range keys {
		snap, ok := got[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		out[key] = snap
	}
	if len(missing) == 0 {
		return out, nil
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no price for %v", missing)
	}
	return out, firstErr
}

// join registers the caller as a waiter on every flight already covering one
// of keys and starts one new flight for the rest.
func (f *PriceFeed) join(ctx context.Context, keys []string, fetch fetchFunc) []*priceFlight {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		flights []*priceFlight
		fresh   []string
	)
	joined := make(map[*priceFlight]bool)
	for _, key := range keys {
		fl, ok := f.inflight[key]
		if !ok {
			fresh = append(fresh, key)
			continue
		}
		if !joined[fl] {
			joined[fl] = true
			fl.waiters++
			flights = append(flights, fl)
		}
	}
	if len(fresh) > 0 {
		flights = append(flights, f.start(ctx, fresh, fetch))
	}
	return flights
}

// start launches a flight for keys. The fetch context keeps ctx's values but
// not its cancellation; it is cancelled when the last waiter leaves.
// Called with f.mu held.
func (f *PriceFeed) start(ctx context.Context, keys []string, fetch fetchFunc) *priceFlight {
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	fl := &priceFlight{
		assets:  keys,
		cancel:  cancel,
		waiters: 1,
		done:    make(chan struct{}),
	}
	for _, key := range keys {
		f.inflight[key] = fl
	}

	go func() {
		defer cancel()
		snaps, err := fetch(fetchCtx, keys)
		f.store(context.WithoutCancel(fetchCtx), snaps)

		f.mu.Lock()
		f.forget(fl)
		f.mu.Unlock()

		fl.snaps, fl.err = snaps, err
		close(fl.done)
	}()
	return fl
}

// leave drops the caller from flights, cancelling any left without waiters.
func (f *PriceFeed) leave(flights []*priceFlight) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fl := range flights {
		fl.waiters--
		if fl.waiters > 0 {
			continue
		}
		f.forget(fl)
		fl.cancel()
		f.log.Debug().Strs("assets", fl.assets).Msg("price fetch abandoned by all callers, cancelled")
	}
}

// forget unregisters fl so later callers start a new fetch. Called with f.mu held.
func (f *PriceFeed) forget(fl *priceFlight) {
	for _, key := range fl.assets {
		if f.inflight[key] == fl {
			delete(f.inflight, key)
		}
	}
}

func (f *PriceFeed) store(ctx context.Context, snaps map[string]domain.PriceSnapshot) {
	for asset, snap := range snaps {
		if !f.cache.Put(snap) || f.mirror == nil {
			continue
		}
		if err := f.mirror.Save(ctx, snap); err != nil {
			f.log.Warn().Err(err).Str("asset", asset).Msg("price mirror save failed")
		}
	}
}

// fetchTokens asks the token price provider for the contracts behind keys.
func (f *PriceFeed) fetchTokens(ctx context.Context, keys []string) (map[string]domain.PriceSnapshot, error) {
	contracts := make([]string, len(keys))
	for i, key := range keys {
		contracts[i] = domain.TokenContract(key)
	}

	callCtx, cancel := context.WithTimeout(ctx, f.chain.timeout)
	defer cancel()

	name := f.tokens.Name()
	got, err := f.tokens.FetchTokenPrices(callCtx, contracts)
	if err != nil {
		return nil, &domain.AllProvidersFailedError{
			Operation: "token price",
			Failures:  []domain.ProviderFailure{{Provider: name, Reason: err.Error()}},
		}
	}

	now := f.chain.now()
	out := make(map[string]domain.PriceSnapshot, len(got))
	var missing []string
	for i, key := range keys {
		snap, ok := got[contracts[i]]
		if !ok {
			missing = append(missing, contracts[i])
			continue
		}
		snap.Asset = key
		if snap.SourceProvider == "" {
			snap.SourceProvider = name
		}
		if snap.FetchedAt.IsZero() {
			snap.FetchedAt = now
		}
		if err := snap.Validate(); err != nil {
			missing = append(missing, contracts[i])
			continue
		}
		out[key] = snap
	}
	if len(missing) > 0 {
		return out, &domain.AllProvidersFailedError{
			Operation: "token price",
			Failures: []domain.ProviderFailure{{
				Provider: name,
				Reason:   "no usable price for " + strings.Join(missing, ","),
			}},
		}
	}
	return out, nil
}
