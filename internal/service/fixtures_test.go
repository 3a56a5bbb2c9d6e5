package service

import (
	"math/big"
	"testing"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testBTCAddress = "38G6aG31AxVWAAdrkph3kjzoe4ZD3T9ZeR"
	testETHAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
)

func mustAddress(t *testing.T, chain domain.ChainID, raw string) domain.Address {
	t.Helper()
	addr, err := domain.NewAddress(chain, raw)
	require.NoError(t, err)
	return addr
}

func satoshis(n int64) *domain.BalanceQuote {
	return &domain.BalanceQuote{
		AmountBaseUnits: big.NewInt(n),
		AssetSymbol:     "BTC",
		Decimals:        8,
	}
}

func snapshot(asset, usd string, fetchedAt time.Time) domain.PriceSnapshot {
	return domain.PriceSnapshot{
		Asset:               asset,
		USDPrice:            decimal.RequireFromString(usd),
		USD24hChangePercent: decimal.RequireFromString("1.5"),
		FetchedAt:           fetchedAt,
		SourceProvider:      "test",
	}
}

func newBalanceProvider(ctrl *gomock.Controller, name string, chain domain.ChainID) *mocks.MockBalanceProvider {
	p := mocks.NewMockBalanceProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().Chain().Return(chain).AnyTimes()
	return p
}

func newPriceProvider(ctrl *gomock.Controller, name string) *mocks.MockPriceProvider {
	p := mocks.NewMockPriceProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	return p
}

// fixedClock is a settable clock for cache freshness tests.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
