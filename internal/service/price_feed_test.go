package service

import (
	"context"
	"testing"
	"time"

	"address-valuation/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// waiters reports how many callers wait on the fetch covering key.
func waiters(f *PriceFeed, key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fl, ok := f.inflight[key]; ok {
		return fl.waiters
	}
	return 0
}

type refreshResult struct {
	snaps map[string]domain.PriceSnapshot
	err   error
}

func refreshAsync(ctx context.Context, feed *PriceFeed, assets ...string) <-chan refreshResult {
	ch := make(chan refreshResult, 1)
	go func() {
		snaps, err := feed.Refresh(ctx, assets)
		ch <- refreshResult{snaps, err}
	}()
	return ch
}

func TestPriceFeed_FetchCancelledWhenAllCallersLeave(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	gomock.InOrder(
		primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).DoAndReturn(
			func(ctx context.Context, _ []string) (map[string]domain.PriceSnapshot, error) {
				close(started)
				<-ctx.Done()
				close(cancelled)
				return nil, ctx.Err()
			}),
		primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).
			Return(map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", time.Now())}, nil),
	)

	feed := newTestFeed(primary, cache)
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()

	first := refreshAsync(ctx1, feed, "BTC")
	<-started
	second := refreshAsync(ctx2, feed, "BTC")
	require.Eventually(t, func() bool { return waiters(feed, "BTC") == 2 }, time.Second, time.Millisecond)

	cancel1()
	assert.ErrorIs(t, (<-first).err, context.Canceled)
	select {
	case <-cancelled:
		t.Fatal("fetch cancelled while a caller still waits")
	case <-time.After(20 * time.Millisecond):
	}

	cancel2()
	assert.ErrorIs(t, (<-second).err, context.Canceled)
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("abandoned fetch was not cancelled")
	}

	// The cancelled fetch is no longer joinable; a new caller starts over.
	snaps, err := feed.Refresh(context.Background(), []string{"BTC"})
	require.NoError(t, err)
	assert.Equal(t, "50000", snaps["BTC"].USDPrice.String())
}

func TestPriceFeed_RemainingCallerGetsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	fetchErr := make(chan error, 1)
	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).DoAndReturn(
		func(ctx context.Context, _ []string) (map[string]domain.PriceSnapshot, error) {
			close(started)
			<-release
			fetchErr <- ctx.Err()
			return map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", time.Now())}, nil
		}).Times(1)

	feed := newTestFeed(primary, cache)
	ctx1, cancel1 := context.WithCancel(context.Background())

	first := refreshAsync(ctx1, feed, "BTC")
	<-started
	second := refreshAsync(context.Background(), feed, "BTC")
	require.Eventually(t, func() bool { return waiters(feed, "BTC") == 2 }, time.Second, time.Millisecond)

	cancel1()
	assert.ErrorIs(t, (<-first).err, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "50000", res.snaps["BTC"].USDPrice.String())
	assert.NoError(t, <-fetchErr, "fetch context must stay live for the remaining caller")

	_, ok := cache.Get("BTC")
	assert.True(t, ok)
}

func TestPriceFeed_JoinsAssetAlreadyInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC", "ETH"}).DoAndReturn(
		func(context.Context, []string) (map[string]domain.PriceSnapshot, error) {
			close(started)
			<-release
			now := time.Now()
			return map[string]domain.PriceSnapshot{
				"BTC": snapshot("BTC", "50000", now),
				"ETH": snapshot("ETH", "3000", now),
			}, nil
		}).Times(1)

	feed := newTestFeed(primary, cache)
	both := refreshAsync(context.Background(), feed, "BTC", "ETH")
	<-started
	btcOnly := refreshAsync(context.Background(), feed, "btc")
	require.Eventually(t, func() bool { return waiters(feed, "BTC") == 2 }, time.Second, time.Millisecond)
	close(release)

	res := <-btcOnly
	require.NoError(t, res.err)
	assert.Len(t, res.snaps, 1)
	assert.Equal(t, "50000", res.snaps["BTC"].USDPrice.String())

	res = <-both
	require.NoError(t, res.err)
	assert.Len(t, res.snaps, 2)
}

func TestPriceFeed_FetchesOnlyAssetsNotInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	cache := NewPriceCache(time.Minute, zerolog.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).DoAndReturn(
		func(context.Context, []string) (map[string]domain.PriceSnapshot, error) {
			close(started)
			<-release
			return map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", time.Now())}, nil
		}).Times(1)
	primary.EXPECT().FetchPrices(gomock.Any(), []string{"ETH"}).
		Return(map[string]domain.PriceSnapshot{"ETH": snapshot("ETH", "3000", time.Now())}, nil).Times(1)

	feed := newTestFeed(primary, cache)
	btc := refreshAsync(context.Background(), feed, "BTC")
	<-started
	both := refreshAsync(context.Background(), feed, "BTC", "ETH")
	require.Eventually(t, func() bool { return waiters(feed, "BTC") == 2 }, time.Second, time.Millisecond)
	close(release)

	res := <-both
	require.NoError(t, res.err)
	assert.Equal(t, "50000", res.snaps["BTC"].USDPrice.String())
	assert.Equal(t, "3000", res.snaps["ETH"].USDPrice.String())
	require.NoError(t, (<-btc).err)
}

func TestPriceFeed_LookupTokensWithoutProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := newTestFeed(newPriceProvider(ctrl, "coingecko"), NewPriceCache(time.Minute, zerolog.Nop()))

	quotes, err := feed.LookupTokens(context.Background(), []string{"0xdac17f958d2ee523a2206206994597c13d831ec7"}, false)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}
