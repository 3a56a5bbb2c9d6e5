package price

import (
	"context"
	"net/url"
	"strings"

	"address-valuation/internal/adapter/provider/upstream"
	"address-valuation/internal/core/domain"

	"github.com/shopspring/decimal"
)

const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider prices every requested asset with one simple/price call.
type CoinGeckoProvider struct {
	baseURL string
	client  *upstream.Client
}

// NewCoinGeckoProvider creates a CoinGeckoProvider.
func NewCoinGeckoProvider(baseURL string, client *upstream.Client) *CoinGeckoProvider {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	return &CoinGeckoProvider{baseURL: baseURL, client: client}
}

func (p *CoinGeckoProvider) Name() string { return "coingecko" }

type coinGeckoQuote struct {
	USD          *decimal.Decimal `json:"usd"`
	USD24hChange *decimal.Decimal `json:"usd_24h_change"`
}

// FetchPrices implements ports.PriceProvider. Assets without a known coin id
// are omitted from the result.
func (p *CoinGeckoProvider) FetchPrices(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error) {
	idToAsset := make(map[string]string, len(assets))
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		a = domain.NormalizeAsset(a)
		if id, ok := coinGeckoIDs[a]; ok {
			idToAsset[id] = a
			ids = append(ids, id)
		}
	}
	out := make(map[string]domain.PriceSnapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := url.Values{
		"ids":                 {strings.Join(ids, ",")},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}
	var resp map[string]coinGeckoQuote
	if err := p.client.GetJSON(ctx, p.baseURL, "/simple/price", q, &resp); err != nil {
		return nil, err
	}

	for id, quote := range resp {
		asset, ok := idToAsset[id]
		if !ok || quote.USD == nil {
			continue
		}
		snap := domain.PriceSnapshot{Asset: asset, USDPrice: *quote.USD}
		if quote.USD24hChange != nil {
			snap.USD24hChangePercent = *quote.USD24hChange
		}
		out[asset] = snap
	}
	return out, nil
}

// FetchTokenPrices implements ports.TokenPriceProvider with one
// simple/token_price/ethereum call. Results are keyed by lower-case contract.
func (p *CoinGeckoProvider) FetchTokenPrices(ctx context.Context, contracts []string) (map[string]domain.PriceSnapshot, error) {
	want := make(map[string]struct{}, len(contracts))
	list := make([]string, 0, len(contracts))
	for _, c := range contracts {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := want[c]; dup {
			continue
		}
		want[c] = struct{}{}
		list = append(list, c)
	}
	out := make(map[string]domain.PriceSnapshot, len(list))
	if len(list) == 0 {
		return out, nil
	}

	q := url.Values{
		"contract_addresses":  {strings.Join(list, ",")},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}
	var resp map[string]coinGeckoQuote
	if err := p.client.GetJSON(ctx, p.baseURL, "/simple/token_price/ethereum", q, &resp); err != nil {
		return nil, err
	}

	for contract, quote := range resp {
		contract = strings.ToLower(contract)
		if _, ok := want[contract]; !ok || quote.USD == nil {
			continue
		}
		snap := domain.PriceSnapshot{Asset: domain.TokenAsset(contract), USDPrice: *quote.USD}
		if quote.USD24hChange != nil {
			snap.USD24hChangePercent = *quote.USD24hChange
		}
		out[contract] = snap
	}
	return out, nil
}
