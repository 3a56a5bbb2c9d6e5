package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"

	"github.com/rs/zerolog"
)

// DefaultProviderTimeout bounds a single upstream call.
const DefaultProviderTimeout = 8 * time.Second

// BalanceChain queries balance providers in strict priority order and returns
// the first success. A failing provider is never retried.
type BalanceChain struct {
	providers map[domain.ChainID][]ports.BalanceProvider
	timeout   time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewBalanceChain groups providers by chain, keeping their relative order.
func NewBalanceChain(providers []ports.BalanceProvider, timeout time.Duration, log zerolog.Logger) *BalanceChain {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	byChain := make(map[domain.ChainID][]ports.BalanceProvider)
	for _, p := range providers {
		byChain[p.Chain()] = append(byChain[p.Chain()], p)
	}
	return &BalanceChain{
		providers: byChain,
		timeout:   timeout,
		now:       time.Now,
		log:       log,
	}
}

// Providers returns the provider names registered for chain, in order.
func (c *BalanceChain) Providers(chain domain.ChainID) []string {
	names := make([]string, 0, len(c.providers[chain]))
	for _, p := range c.providers[chain] {
		names = append(names, p.Name())
	}
	return names
}

// Fetch returns the balance of addr from the first provider that answers.
// When every provider fails it returns *domain.AllProvidersFailedError and
// never a zero balance. Cancellation of ctx aborts the chain.
func (c *BalanceChain) Fetch(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	providers := c.providers[addr.Chain()]
	failures := make([]domain.ProviderFailure, 0, len(providers))

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		quote, err := c.call(ctx, p, addr)
		if err != nil {
			// Caller gave up.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.log.Warn().Err(err).
				Str("provider", p.Name()).
				Str("address", addr.String()).
				Msg("balance provider failed, trying next")
			failures = append(failures, domain.ProviderFailure{Provider: p.Name(), Reason: err.Error()})
			continue
		}

		c.log.Debug().
			Str("provider", p.Name()).
			Str("address", addr.String()).
			Str("amount", quote.AmountBaseUnits.String()).
			Msg("balance resolved")
		return quote, nil
	}

	if len(providers) == 0 {
		failures = append(failures, domain.ProviderFailure{Provider: "none", Reason: "no providers registered for " + string(addr.Chain())})
	}
	return nil, &domain.AllProvidersFailedError{Operation: "balance", Failures: failures}
}

func (c *BalanceChain) call(ctx context.Context, p ports.BalanceProvider, addr domain.Address) (*domain.BalanceQuote, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	quote, err := p.FetchBalance(callCtx, addr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("timed out after %s: %w", c.timeout, err)
		}
		return nil, err
	}
	if quote == nil || quote.AmountBaseUnits == nil {
		return nil, errors.New("empty balance response")
	}
	if quote.AmountBaseUnits.Sign() < 0 {
		return nil, fmt.Errorf("negative balance %s", quote.AmountBaseUnits)
	}

	quote.Address = addr
	quote.SourceProvider = p.Name()
	if quote.AssetSymbol == "" {
		quote.AssetSymbol = addr.Chain().NativeAsset()
		quote.Decimals = addr.Chain().NativeDecimals()
	}
	if quote.FetchedAt.IsZero() {
		quote.FetchedAt = c.now()
	}
	return quote, nil
}
