package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNegativePrice is returned for snapshots carrying a negative USD price.
var ErrNegativePrice = errors.New("negative usd price")

// PriceSnapshot is a single point-in-time price observation.
type PriceSnapshot struct {
	Asset               string          `json:"asset"`
	USDPrice            decimal.Decimal `json:"usd_price"`
	USD24hChangePercent decimal.Decimal `json:"usd_24h_change_percent"`
	FetchedAt           time.Time       `json:"fetched_at"`
	SourceProvider      string          `json:"source_provider"`
}

// Validate checks the snapshot invariants.
func (p PriceSnapshot) Validate() error {
	if p.Asset == "" {
		return errors.New("empty asset")
	}
	if p.USDPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// IsFresh reports whether the snapshot is younger than ttl at now.
func (p PriceSnapshot) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.FetchedAt) < ttl
}

// NormalizeAsset canonicalises an asset symbol.
func NormalizeAsset(asset string) string {
	return strings.ToUpper(strings.TrimSpace(asset))
}

const tokenAssetPrefix = "ETH:"

// TokenAsset is the price key of an ERC-20 contract on Ethereum.
func TokenAsset(contract string) string {
	return NormalizeAsset(tokenAssetPrefix + contract)
}

// TokenContract recovers the lower-case contract address from a TokenAsset key.
func TokenContract(asset string) string {
	return strings.ToLower(strings.TrimPrefix(NormalizeAsset(asset), tokenAssetPrefix))
}

// ChangePercent derives a 24h percent change from the opening and last price.
// A zero open yields zero.
func ChangePercent(open, last decimal.Decimal) decimal.Decimal {
	if open.IsZero() {
		return decimal.Zero
	}
	return last.Sub(open).Div(open).Mul(decimal.NewFromInt(100))
}
