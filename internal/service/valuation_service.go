package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"
	"address-valuation/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const DefaultMaxConcurrency = 4

// ValuationServiceImpl implements ports.ValuationService.
type ValuationServiceImpl struct {
	balances       *BalanceChain
	prices         *PriceFeed
	maxConcurrency int64
	log            zerolog.Logger
}

// NewValuationService creates a new ValuationServiceImpl.
func NewValuationService(balances *BalanceChain, prices *PriceFeed, maxConcurrency int, log zerolog.Logger) *ValuationServiceImpl {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &ValuationServiceImpl{
		balances:       balances,
		prices:         prices,
		maxConcurrency: int64(maxConcurrency),
		log:            log,
	}
}

// Resolve validates the address, then fetches its balance and the native
// asset price concurrently and combines them.
//
// A balance failure is an error (BAL_001). A price failure is not: the result
// then carries a stale price or no price at all, with PriceErr set.
func (s *ValuationServiceImpl) Resolve(ctx context.Context, chain domain.ChainID, address string, opts ports.ResolveOptions) (*domain.ValuationResult, error) {
	addr, err := domain.NewAddress(chain, address)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedChain) {
			return nil, apperror.ErrUnsupportedChain(err)
		}
		return nil, apperror.ErrInvalidAddressFormat(err)
	}

	asset := addr.Chain().NativeAsset()

	var (
		balance  *domain.BalanceQuote
		quote    *ports.PriceQuote
		priceErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.balances.Fetch(gctx, addr)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	g.Go(func() error {
		// Price trouble never fails the group.
		quotes, err := s.prices.Lookup(gctx, []string{asset}, opts.ForceRefresh)
		if q, ok := quotes[asset]; ok {
			quote = &q
			return nil
		}
		if err == nil {
			err = fmt.Errorf("no price for %s", asset)
		}
		priceErr = err
		return nil
	})

	if err := g.Wait(); err != nil {
		var allFailed *domain.AllProvidersFailedError
		if errors.As(err, &allFailed) {
			s.log.Error().Err(err).Str("address", addr.String()).Msg("balance unavailable")
			return nil, apperror.ErrBalanceUnavailable(err).WithDetails(allFailed.Failures)
		}
		return nil, fmt.Errorf("resolving balance of %s: %w", addr, err)
	}

	s.valueTokens(ctx, balance, opts.ForceRefresh)

	result := &domain.ValuationResult{Balance: balance}
	if quote == nil {
		s.log.Warn().Err(priceErr).Str("asset", asset).Msg("price unavailable, returning balance without value")
		result.PriceErr = apperror.ErrPriceUnavailable(priceErr)
		return result, nil
	}

	snap := quote.Snapshot
	value := domain.Combine(balance, snap)
	result.Price = &snap
	result.ValueUSD = &value
	result.StalePriceUsed = quote.Stale

	s.log.Info().
		Str("address", addr.String()).
		Str("balance", balance.FormatDisplay()).
		Str("balance_source", balance.SourceProvider).
		Str("price_source", snap.SourceProvider).
		Bool("stale", quote.Stale).
		Msg("address valued")

	return result, nil
}

// valueTokens sets ValueUSD on every token holding with a known price.
// Token pricing problems never fail the valuation.
func (s *ValuationServiceImpl) valueTokens(ctx context.Context, balance *domain.BalanceQuote, force bool) {
	if len(balance.Tokens) == 0 {
		return
	}
	contracts := make([]string, len(balance.Tokens))
	for i, tok := range balance.Tokens {
		contracts[i] = tok.Contract
	}

	quotes, err := s.prices.LookupTokens(ctx, contracts, force)
	if err != nil {
		s.log.Warn().Err(err).Int("tokens", len(contracts)).Msg("some token prices unavailable")
	}
	for i := range balance.Tokens {
		tok := &balance.Tokens[i]
		q, ok := quotes[strings.ToLower(tok.Contract)]
		if !ok {
			continue
		}
		value := domain.ToDisplayUnits(tok.RawAmount, tok.Decimals).Mul(q.Snapshot.USDPrice)
		tok.ValueUSD = &value
	}
}

// ResolveMany values independent addresses with bounded concurrency.
// Items come back in request order; one failing item does not affect others.
func (s *ValuationServiceImpl) ResolveMany(ctx context.Context, reqs []ports.ResolveRequest, opts ports.ResolveOptions) []ports.BatchItem {
	items := make([]ports.BatchItem, len(reqs))
	sem := semaphore.NewWeighted(s.maxConcurrency)

	var g errgroup.Group
	for i, req := range reqs {
		items[i].Request = req
		if err := sem.Acquire(ctx, 1); err != nil {
			items[i].Err = err
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			items[i].Result, items[i].Err = s.Resolve(ctx, req.Chain, req.Address, opts)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

// Prices returns quotes for the requested assets. Unsupported assets are a
// validation error. Assets without any price are omitted; PRC_001 is returned
// only when none could be priced.
func (s *ValuationServiceImpl) Prices(ctx context.Context, assets []string, opts ports.ResolveOptions) (map[string]ports.PriceQuote, error) {
	assets = normalizeAssets(assets)
	if len(assets) == 0 {
		return nil, apperror.Validation("at least one asset is required")
	}
	for _, a := range assets {
		if !isNativeAsset(a) {
			return nil, apperror.Validation("unsupported asset: " + a)
		}
	}

	quotes, err := s.prices.Lookup(ctx, assets, opts.ForceRefresh)
	if len(quotes) == 0 {
		if err == nil {
			err = errors.New("no prices resolved")
		}
		appErr := apperror.ErrPriceUnavailable(err)
		var allFailed *domain.AllProvidersFailedError
		if errors.As(err, &allFailed) {
			appErr = appErr.WithDetails(allFailed.Failures)
		}
		return nil, appErr
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("some prices unavailable")
	}
	return quotes, nil
}

func isNativeAsset(asset string) bool {
	for _, c := range domain.SupportedChains() {
		if c.NativeAsset() == asset {
			return true
		}
	}
	return false
}
