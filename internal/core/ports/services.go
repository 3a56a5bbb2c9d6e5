package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"address-valuation/internal/core/domain"
)

// ResolveOptions tunes a single valuation.
type ResolveOptions struct {
	// ForceRefresh skips the price freshness check.
	ForceRefresh bool
}

// ResolveRequest identifies one address in a batch.
type ResolveRequest struct {
	Chain   domain.ChainID
	Address string
}

// BatchItem is the outcome of one batch entry. Exactly one of Result and Err is set.
type BatchItem struct {
	Request ResolveRequest
	Result  *domain.ValuationResult
	Err     error
}

// PriceQuote is a price lookup result with its staleness flag.
type PriceQuote struct {
	Snapshot domain.PriceSnapshot
	Stale    bool
}

// ValuationService answers "what is this address worth right now".
type ValuationService interface {
	Resolve(ctx context.Context, chain domain.ChainID, address string, opts ResolveOptions) (*domain.ValuationResult, error)
	ResolveMany(ctx context.Context, reqs []ResolveRequest, opts ResolveOptions) []BatchItem
	Prices(ctx context.Context, assets []string, opts ResolveOptions) (map[string]PriceQuote, error)
}

// PriceRefresher refreshes tracked assets out of band.
type PriceRefresher interface {
	RefreshNow(ctx context.Context) (map[string]domain.PriceSnapshot, error)
}

// TokenService issues and validates operator tokens for admin routes.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}
