package price

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"address-valuation/internal/adapter/provider/upstream"
	"address-valuation/internal/core/domain"

	"github.com/shopspring/decimal"
)

const DefaultOKXURL = "https://www.okx.com"

// OKXProvider prices assets from OKX spot tickers against USDT.
// The 24h change is derived from the 24h open and last trade.
type OKXProvider struct {
	baseURL string
	client  *upstream.Client
}

// NewOKXProvider creates an OKXProvider.
func NewOKXProvider(baseURL string, client *upstream.Client) *OKXProvider {
	if baseURL == "" {
		baseURL = DefaultOKXURL
	}
	return &OKXProvider{baseURL: baseURL, client: client}
}

func (p *OKXProvider) Name() string { return "okx" }

type okxResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		InstID  string          `json:"instId"`
		Last    decimal.Decimal `json:"last"`
		Open24h decimal.Decimal `json:"open24h"`
	} `json:"data"`
}

// FetchPrices implements ports.PriceProvider, one ticker request per asset.
// Assets that fail are omitted; an error is returned only if all fail.
func (p *OKXProvider) FetchPrices(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error) {
	out := make(map[string]domain.PriceSnapshot, len(assets))
	var errs []error
	for _, a := range assets {
		a = domain.NormalizeAsset(a)
		snap, err := p.ticker(ctx, a)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
			continue
		}
		out[a] = snap
	}
	if len(out) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func (p *OKXProvider) ticker(ctx context.Context, asset string) (domain.PriceSnapshot, error) {
	q := url.Values{"instId": {usdtPair(asset, "-")}}

	var resp okxResponse
	if err := p.client.GetJSON(ctx, p.baseURL, "/api/v5/market/ticker", q, &resp); err != nil {
		return domain.PriceSnapshot{}, err
	}
	if resp.Code != "0" {
		return domain.PriceSnapshot{}, fmt.Errorf("okx code %s: %s", resp.Code, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return domain.PriceSnapshot{}, errors.New("okx: empty ticker data")
	}

	t := resp.Data[0]
	return domain.PriceSnapshot{
		Asset:               asset,
		USDPrice:            t.Last,
		USD24hChangePercent: domain.ChangePercent(t.Open24h, t.Last),
	}, nil
}
