package service

import (
	"context"
	"time"

	"address-valuation/internal/core/domain"

	"github.com/rs/zerolog"
)

// PriceRefresherImpl keeps tracked assets warm in the price cache.
type PriceRefresherImpl struct {
	feed     *PriceFeed
	assets   []string
	interval time.Duration
	log      zerolog.Logger
}

// NewPriceRefresher creates a refresher for assets. interval <= 0 makes Run a no-op.
func NewPriceRefresher(feed *PriceFeed, assets []string, interval time.Duration, log zerolog.Logger) *PriceRefresherImpl {
	return &PriceRefresherImpl{
		feed:     feed,
		assets:   normalizeAssets(assets),
		interval: interval,
		log:      log,
	}
}

// RefreshNow fetches the tracked assets, joining a refresh already in flight.
func (r *PriceRefresherImpl) RefreshNow(ctx context.Context) (map[string]domain.PriceSnapshot, error) {
	snaps, err := r.feed.Refresh(ctx, r.assets)
	if err != nil {
		r.log.Warn().Err(err).Strs("assets", r.assets).Int("refreshed", len(snaps)).Msg("price refresh incomplete")
		return snaps, err
	}
	r.log.Debug().Strs("assets", r.assets).Msg("prices refreshed")
	return snaps, nil
}

// Run refreshes immediately, then every interval until ctx is done.
func (r *PriceRefresherImpl) Run(ctx context.Context) {
	if r.interval <= 0 || len(r.assets) == 0 {
		r.log.Info().Msg("background price refresh disabled")
		return
	}

	r.log.Info().Dur("interval", r.interval).Strs("assets", r.assets).Msg("background price refresh started")
	_, _ = r.RefreshNow(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("background price refresh stopped")
			return
		case <-ticker.C:
			_, _ = r.RefreshNow(ctx)
		}
	}
}
