package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testChainConfig() PriceChainConfig {
	return PriceChainConfig{MaxRetries: 3, RetryDelay: time.Millisecond, Timeout: time.Second}
}

func TestPriceChain_PrimarySucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	fb := newPriceProvider(ctrl, "binance")
	now := time.Now()

	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC", "ETH"}).Return(map[string]domain.PriceSnapshot{
		"BTC": snapshot("BTC", "50000", now),
		"ETH": snapshot("ETH", "3000", now),
	}, nil).Times(1)

	chain := NewPriceChain(primary, []ports.PriceProvider{fb}, testChainConfig(), zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{"btc", "ETH", "BTC"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "50000", got["BTC"].USDPrice.String())
	assert.Equal(t, "3000", got["ETH"].USDPrice.String())
}

func TestPriceChain_PrimaryRetriedThenFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	fb1 := newPriceProvider(ctrl, "binance")
	fb2 := newPriceProvider(ctrl, "okx")

	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).Return(nil, errors.New("status 429")).Times(3)
	fb1.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).
		Return(map[string]domain.PriceSnapshot{"BTC": {USDPrice: snapshot("BTC", "49000", time.Time{}).USDPrice}}, nil).Times(1)
	// fb2 must not be called.

	chain := NewPriceChain(primary, []ports.PriceProvider{fb1, fb2}, testChainConfig(), zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{"BTC"})
	require.NoError(t, err)

	btc := got["BTC"]
	assert.Equal(t, "BTC", btc.Asset)
	assert.Equal(t, "binance", btc.SourceProvider)
	assert.False(t, btc.FetchedAt.IsZero())
}

func TestPriceChain_PartialAnswersAreMerged(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	fb1 := newPriceProvider(ctrl, "binance")
	fb2 := newPriceProvider(ctrl, "okx")
	now := time.Now()

	cfg := testChainConfig()
	cfg.MaxRetries = 1

	primary.EXPECT().FetchPrices(gomock.Any(), []string{"BTC", "ETH"}).Return(nil, errors.New("down"))
	fb1.EXPECT().FetchPrices(gomock.Any(), []string{"BTC", "ETH"}).
		Return(map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", now)}, nil)
	fb2.EXPECT().FetchPrices(gomock.Any(), []string{"ETH"}).
		Return(map[string]domain.PriceSnapshot{"ETH": snapshot("ETH", "3000", now)}, nil)

	chain := NewPriceChain(primary, []ports.PriceProvider{fb1, fb2}, cfg, zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{"BTC", "ETH"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPriceChain_AllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	fb1 := newPriceProvider(ctrl, "binance")
	fb2 := newPriceProvider(ctrl, "okx")

	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).Return(nil, errors.New("down")).Times(3)
	fb1.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).Return(nil, errors.New("down")).Times(1)
	fb2.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).Return(map[string]domain.PriceSnapshot{}, nil).Times(1)

	chain := NewPriceChain(primary, []ports.PriceProvider{fb1, fb2}, testChainConfig(), zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{"BTC"})
	require.Error(t, err)
	assert.Empty(t, got)

	var allFailed *domain.AllProvidersFailedError
	require.ErrorAs(t, err, &allFailed)
	assert.Equal(t, "price", allFailed.Operation)
	require.Len(t, allFailed.Failures, 5)
	assert.Equal(t, "coingecko", allFailed.Failures[0].Provider)
	assert.Equal(t, "okx", allFailed.Failures[4].Provider)
}

func TestPriceChain_NegativePriceIsAFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")
	fb := newPriceProvider(ctrl, "binance")
	now := time.Now()

	cfg := testChainConfig()
	cfg.MaxRetries = 1

	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).
		Return(map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "-1", now)}, nil)
	fb.EXPECT().FetchPrices(gomock.Any(), []string{"BTC"}).
		Return(map[string]domain.PriceSnapshot{"BTC": snapshot("BTC", "50000", now)}, nil)

	chain := NewPriceChain(primary, []ports.PriceProvider{fb}, cfg, zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{"BTC"})
	require.NoError(t, err)
	assert.Equal(t, "50000", got["BTC"].USDPrice.String())
}

func TestPriceChain_RetryDelayIsCancellable(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")

	cfg := testChainConfig()
	cfg.RetryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []string) (map[string]domain.PriceSnapshot, error) {
			time.AfterFunc(10*time.Millisecond, cancel)
			return nil, errors.New("down")
		}).Times(1)

	chain := NewPriceChain(primary, nil, cfg, zerolog.Nop())

	start := time.Now()
	_, err := chain.Fetch(ctx, []string{"BTC"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPriceChain_EmptyRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := newPriceProvider(ctrl, "coingecko")

	chain := NewPriceChain(primary, nil, testChainConfig(), zerolog.Nop())
	got, err := chain.Fetch(context.Background(), []string{" "})
	require.NoError(t, err)
	assert.Empty(t, got)
}
