// Package btc implements Bitcoin balance providers over public HTTP APIs.
// All amounts are exact satoshi integers.
package btc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"

	"address-valuation/internal/adapter/provider/upstream"
	"address-valuation/internal/core/domain"
)

// Default public endpoints, in fallback order.
const (
	DefaultMempoolURL     = "https://mempool.space/api"
	DefaultBlockstreamURL = "https://blockstream.info/api"
	DefaultBlockchainURL  = "https://blockchain.info"
	DefaultBlockcypherURL = "https://api.blockcypher.com/v1/btc/main"
)

func quote(sats *big.Int) *domain.BalanceQuote {
	return &domain.BalanceQuote{
		AmountBaseUnits: sats,
		AssetSymbol:     domain.ChainBTC.NativeAsset(),
		Decimals:        domain.ChainBTC.NativeDecimals(),
	}
}

// EsploraProvider reads confirmed balances from an Esplora-compatible API
// (mempool.space, blockstream.info): funded_txo_sum - spent_txo_sum.
type EsploraProvider struct {
	name    string
	baseURL string
	client  *upstream.Client
}

// NewMempoolProvider creates the mempool.space provider.
func NewMempoolProvider(baseURL string, client *upstream.Client) *EsploraProvider {
	return newEsplora("mempool.space", baseURL, DefaultMempoolURL, client)
}

// NewBlockstreamProvider creates the blockstream.info provider.
func NewBlockstreamProvider(baseURL string, client *upstream.Client) *EsploraProvider {
	return newEsplora("blockstream.info", baseURL, DefaultBlockstreamURL, client)
}

func newEsplora(name, baseURL, fallback string, client *upstream.Client) *EsploraProvider {
	if baseURL == "" {
		baseURL = fallback
	}
	return &EsploraProvider{name: name, baseURL: baseURL, client: client}
}

func (p *EsploraProvider) Name() string          { return p.name }
func (p *EsploraProvider) Chain() domain.ChainID { return domain.ChainBTC }

type esploraAddress struct {
	ChainStats struct {
		FundedTxoSum json.Number `json:"funded_txo_sum"`
		SpentTxoSum  json.Number `json:"spent_txo_sum"`
	} `json:"chain_stats"`
}

// FetchBalance implements ports.BalanceProvider.
func (p *EsploraProvider) FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	var out esploraAddress
	if err := p.client.GetJSON(ctx, p.baseURL, "/address/"+url.PathEscape(addr.Value()), nil, &out); err != nil {
		return nil, err
	}

	funded, err := upstream.ParseInt(out.ChainStats.FundedTxoSum.String())
	if err != nil {
		return nil, fmt.Errorf("funded_txo_sum: %w", err)
	}
	spent, err := upstream.ParseInt(out.ChainStats.SpentTxoSum.String())
	if err != nil {
		return nil, fmt.Errorf("spent_txo_sum: %w", err)
	}
	return quote(funded.Sub(funded, spent)), nil
}

// BlockchainInfoProvider reads final balances from blockchain.info.
type BlockchainInfoProvider struct {
	baseURL string
	client  *upstream.Client
}

// NewBlockchainInfoProvider creates the blockchain.info provider.
func NewBlockchainInfoProvider(baseURL string, client *upstream.Client) *BlockchainInfoProvider {
	if baseURL == "" {
		baseURL = DefaultBlockchainURL
	}
	return &BlockchainInfoProvider{baseURL: baseURL, client: client}
}

func (p *BlockchainInfoProvider) Name() string          { return "blockchain.info" }
func (p *BlockchainInfoProvider) Chain() domain.ChainID { return domain.ChainBTC }

type finalBalance struct {
	FinalBalance json.Number `json:"final_balance"`
}

// FetchBalance implements ports.BalanceProvider.
// The response is keyed by the queried address.
func (p *BlockchainInfoProvider) FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	var out map[string]finalBalance
	q := url.Values{"active": {addr.Value()}}
	if err := p.client.GetJSON(ctx, p.baseURL, "/balance", q, &out); err != nil {
		return nil, err
	}

	entry, ok := out[addr.Value()]
	if !ok {
		return nil, fmt.Errorf("address missing from response")
	}
	sats, err := upstream.ParseInt(entry.FinalBalance.String())
	if err != nil {
		return nil, fmt.Errorf("final_balance: %w", err)
	}
	return quote(sats), nil
}

// BlockcypherProvider reads final balances from BlockCypher.
type BlockcypherProvider struct {
	baseURL string
	client  *upstream.Client
}

// NewBlockcypherProvider creates the BlockCypher provider.
func NewBlockcypherProvider(baseURL string, client *upstream.Client) *BlockcypherProvider {
	if baseURL == "" {
		baseURL = DefaultBlockcypherURL
	}
	return &BlockcypherProvider{baseURL: baseURL, client: client}
}

func (p *BlockcypherProvider) Name() string          { return "blockcypher" }
func (p *BlockcypherProvider) Chain() domain.ChainID { return domain.ChainBTC }

// FetchBalance implements ports.BalanceProvider.
func (p *BlockcypherProvider) FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	var out finalBalance
	if err := p.client.GetJSON(ctx, p.baseURL, "/addrs/"+url.PathEscape(addr.Value())+"/balance", nil, &out); err != nil {
		return nil, err
	}
	sats, err := upstream.ParseInt(out.FinalBalance.String())
	if err != nil {
		return nil, fmt.Errorf("final_balance: %w", err)
	}
	return quote(sats), nil
}
