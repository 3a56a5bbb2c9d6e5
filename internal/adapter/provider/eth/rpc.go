package eth

import (
	"context"
	"fmt"

	"address-valuation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultRPCURL is a public Ethereum mainnet JSON-RPC endpoint.
const DefaultRPCURL = "https://cloudflare-eth.com"

// RPCProvider reads native balances through eth_getBalance on any EVM node.
type RPCProvider struct {
	client *ethclient.Client
}

// NewRPCProvider dials the node. For HTTP endpoints no connection is made
// until the first call.
func NewRPCProvider(ctx context.Context, rawURL string) (*RPCProvider, error) {
	if rawURL == "" {
		rawURL = DefaultRPCURL
	}
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("dialing eth rpc: %w", err)
	}
	return &RPCProvider{client: client}, nil
}

func (p *RPCProvider) Name() string          { return "eth-rpc" }
func (p *RPCProvider) Chain() domain.ChainID { return domain.ChainETH }

// FetchBalance implements ports.BalanceProvider using the latest block.
func (p *RPCProvider) FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	wei, err := p.client.BalanceAt(ctx, common.HexToAddress(addr.Value()), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance: %w", err)
	}
	return &domain.BalanceQuote{
		AmountBaseUnits: wei,
		AssetSymbol:     domain.ChainETH.NativeAsset(),
		Decimals:        domain.ChainETH.NativeDecimals(),
	}, nil
}

// Close releases the underlying RPC client.
func (p *RPCProvider) Close() {
	p.client.Close()
}
