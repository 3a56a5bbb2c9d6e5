package ports

//go:generate mockgen -source=providers.go -destination=mocks/mock_providers.go -package=mocks

import (
	"context"

	"address-valuation/internal/core/domain"
)

// BalanceProvider is one upstream source of address balances for a single chain.
type BalanceProvider interface {
	// Name identifies the provider in logs and failure reports.
	Name() string
	Chain() domain.ChainID
	// FetchBalance returns the normalised balance. A verified empty address
	// returns a zero amount, never an error; any failure returns an error.
	FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error)
}

// PriceProvider is one upstream source of USD spot prices.
type PriceProvider interface {
	Name() string
	// FetchPrices returns snapshots keyed by normalised asset symbol. Assets
	// the provider cannot price are omitted from the map.
	FetchPrices(ctx context.Context, assets []string) (map[string]domain.PriceSnapshot, error)
}

// TokenPriceProvider is an upstream source of USD prices for ERC-20 contracts.
type TokenPriceProvider interface {
	Name() string
	// FetchTokenPrices returns snapshots keyed by lower-case contract address.
	// Contracts the provider cannot price are omitted from the map.
	FetchTokenPrices(ctx context.Context, contracts []string) (map[string]domain.PriceSnapshot, error)
}

// PriceMirror is the opportunistic durable copy of the last good price per asset.
type PriceMirror interface {
	Save(ctx context.Context, snapshot domain.PriceSnapshot) error
	// Load returns nil, nil when nothing is stored for the asset.
	Load(ctx context.Context, asset string) (*domain.PriceSnapshot, error)
}
