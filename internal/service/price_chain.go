package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	DefaultPriceMaxRetries = 3
	DefaultPriceRetryDelay = 5 * time.Second
)

// PriceChainConfig tunes the price provider chain.
type PriceChainConfig struct {
	MaxRetries int           // attempts on the primary, at least 1
	RetryDelay time.Duration // pause between primary attempts
	Timeout    time.Duration // per call
}

// PriceChain fetches prices from a primary provider with bounded retry, then
// from each fallback once, in order.
type PriceChain struct {
	primary    ports.PriceProvider
	fallbacks  []ports.PriceProvider
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// NewPriceChain creates a PriceChain.
func NewPriceChain(primary ports.PriceProvider, fallbacks []ports.PriceProvider, cfg PriceChainConfig, log zerolog.Logger) *PriceChain {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = DefaultPriceMaxRetries
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProviderTimeout
	}
	return &PriceChain{
		primary:    primary,
		fallbacks:  fallbacks,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
		now:        time.Now,
		log:        log,
	}
}

// Fetch resolves a snapshot for every requested asset.
//
// Partial answers are merged: an asset resolved by one provider is not asked
// of the next. If some asset stays unresolved the returned map still holds the
// resolved ones, together with a *domain.AllProvidersFailedError.
func (c *PriceChain) Fetch(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error) {
	pending := normalizeAssets(assets)
	resolved := make(map[string]domain.PriceSnapshot, len(pending))
	if len(pending) == 0 {
		return resolved, nil
	}

	var failures []domain.ProviderFailure

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.retryDelay); err != nil {
				return resolved, err
			}
		}

		pending, failures = c.try(ctx, c.primary, pending, resolved, failures)
		if len(pending) == 0 {
			return resolved, nil
		}
		if err := ctx.Err(); err != nil {
			return resolved, err
		}
		c.log.Warn().
			Str("provider", c.primary.Name()).
			Int("attempt", attempt).
			Int("max_attempts", c.maxRetries).
			Strs("pending", pending).
			Msg("primary price provider attempt failed")
	}

	for _, fb := range c.fallbacks {
		pending, failures = c.try(ctx, fb, pending, resolved, failures)
		if len(pending) == 0 {
			return resolved, nil
		}
		if err := ctx.Err(); err != nil {
			return resolved, err
		}
		c.log.Warn().
			Str("provider", fb.Name()).
			Strs("pending", pending).
			Msg("fallback price provider failed")
	}

	return resolved, &domain.AllProvidersFailedError{Operation: "price", Failures: failures}
}

// try asks p for the pending assets, merges valid snapshots into resolved and
// returns what is still pending.
func (c *PriceChain) try(
	ctx context.Context,
	p ports.PriceProvider,
	pending []string,
	resolved map[string]domain.PriceSnapshot,
	failures []domain.ProviderFailure,
) ([]string, []domain.ProviderFailure) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	got, err := p.FetchPrices(callCtx, pending)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("timed out after %s: %w", c.timeout, err)
		}
		return pending, append(failures, domain.ProviderFailure{Provider: p.Name(), Reason: err.Error()})
	}

	now := c.now()
	var missing []string
	for _, asset := range pending {
		snap, ok := got[asset]
		if !ok {
			missing = append(missing, asset)
			continue
		}
		snap.Asset = asset
		if snap.SourceProvider == "" {
			snap.SourceProvider = p.Name()
		}
		if snap.FetchedAt.IsZero() {
			snap.FetchedAt = now
		}
		if err := snap.Validate(); err != nil {
			failures = append(failures, domain.ProviderFailure{Provider: p.Name(), Reason: asset + ": " + err.Error()})
			missing = append(missing, asset)
			continue
		}
		resolved[asset] = snap
	}
	switch {
	case len(missing) == 0:
	case len(missing) == len(pending):
		failures = append(failures, domain.ProviderFailure{Provider: p.Name(), Reason: fmt.Sprintf("no usable price for %v", missing)})
	default:
		failures = append(failures, domain.ProviderFailure{Provider: p.Name(), Reason: fmt.Sprintf("partial answer, missing %v", missing)})
	}
	return missing, failures
}

// normalizeAssets upper-cases and de-duplicates asset symbols, keeping order.
func normalizeAssets(assets []string) []string {
	seen := make(map[string]struct{}, len(assets))
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		a = domain.NormalizeAsset(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
