package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"address-valuation/internal/adapter/provider/upstream"
	"address-valuation/internal/core/domain"

	"github.com/shopspring/decimal"
)

const DefaultBinanceURL = "https://api.binance.com"

// BinanceProvider prices assets from Binance 24h tickers against USDT.
type BinanceProvider struct {
	baseURL string
	client  *upstream.Client
}

// NewBinanceProvider creates a BinanceProvider.
func NewBinanceProvider(baseURL string, client *upstream.Client) *BinanceProvider {
	if baseURL == "" {
		baseURL = DefaultBinanceURL
	}
	return &BinanceProvider{baseURL: baseURL, client: client}
}

func (p *BinanceProvider) Name() string { return "binance" }

type binanceTicker struct {
	Symbol             string          `json:"symbol"`
	LastPrice          decimal.Decimal `json:"lastPrice"`
	PriceChangePercent decimal.Decimal `json:"priceChangePercent"`
}

// FetchPrices implements ports.PriceProvider with a single batched
// ticker/24hr request.
func (p *BinanceProvider) FetchPrices(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error) {
	symbolToAsset := make(map[string]string, len(assets))
	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		a = domain.NormalizeAsset(a)
		s := usdtPair(a, "")
		symbolToAsset[s] = a
		symbols = append(symbols, s)
	}
	out := make(map[string]domain.PriceSnapshot, len(symbols))
	if len(symbols) == 0 {
		return out, nil
	}

	encoded, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encoding symbols: %w", err)
	}
	q := url.Values{"symbols": {string(encoded)}}

	var tickers []binanceTicker
	if err := p.client.GetJSON(ctx, p.baseURL, "/api/v3/ticker/24hr", q, &tickers); err != nil {
		return nil, err
	}

	for _, t := range tickers {
		asset, ok := symbolToAsset[strings.ToUpper(t.Symbol)]
		if !ok {
			continue
		}
		out[asset] = domain.PriceSnapshot{
			Asset:               asset,
			USDPrice:            t.LastPrice,
			USD24hChangePercent: t.PriceChangePercent,
		}
	}
	return out, nil
}
