// Package price implements USD spot price providers.
// USDT-quoted exchange tickers are treated as USD.
package price

import "address-valuation/internal/core/domain"

// coinGeckoIDs maps asset symbols to CoinGecko coin ids.
var coinGeckoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

// usdtPair returns the exchange ticker for asset against USDT, joined by sep.
func usdtPair(asset, sep string) string {
	return domain.NormalizeAsset(asset) + sep + "USDT"
}
