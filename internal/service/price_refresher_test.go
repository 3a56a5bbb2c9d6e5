package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestFeed(primary ports.PriceProvider, cache *PriceCache) *PriceFeed {
	chain := NewPriceChain(primary, nil, PriceChainConfig{MaxRetries: 1, Timeout: time.Second}, zerolog.Nop())
	return NewPriceFeed(chain, cache, nil, zerolog.Nop())
}

func TestPriceRefresher_RefreshNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())
	now := time.Now()

	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC", "ETH"}).Return(map[string]domain.PriceSnapshot{
		"BTC": snapshot("BTC", "50000", now),
		"ETH": snapshot("ETH", "3000", now),
	}, nil)

	r := NewPriceRefresher(newTestFeed(primary, cache), []string{"eth", "BTC"}, time.Minute, zerolog.Nop())
	snaps, err := r.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	_, ok := cache.Get("ETH")
	assert.True(t, ok)
}

func TestPriceRefresher_ConcurrentRefreshesShareOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []string) (map[string]domain.PriceSnapshot, error) {
			close(started)
			<-release
			return map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", time.Now())}, nil
		}).Times(1)

	r := NewPriceRefresher(newTestFeed(primary, cache), []string{"BTC"}, time.Minute, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]map[string]domain.PriceSnapshot, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps, err := r.RefreshNow(context.Background())
			assert.NoError(t, err)
			results[i] = snaps
		}(i)
		if i == 0 {
			<-started
		}
	}
	// Give the joiners time to attach to the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, snaps := range results {
		assert.Equal(t, "50000", snaps["BTC"].USDPrice.String())
	}
}

func TestPriceRefresher_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	var calls atomic.Int32
	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []string) (map[string]domain.PriceSnapshot, error) {
			calls.Add(1)
			return map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", time.Now())}, nil
		}).MinTimes(2)

	r := NewPriceRefresher(newTestFeed(primary, cache), []string{"BTC"}, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestPriceRefresher_RunDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")

	r := NewPriceRefresher(newTestFeed(primary, NewPriceCache(time.Minute, zerolog.Nop())), []string{"BTC"}, 0, zerolog.Nop())
	r.Run(context.Background()) // returns immediately, no fetch
}
