// Package eth implements Ethereum balance providers.
package eth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"address-valuation/internal/adapter/provider/upstream"
	"address-valuation/internal/core/domain"

	"github.com/rs/zerolog"
)

const (
	DefaultEtherscanURL = "https://api.etherscan.io/v2/api"
	tokenTxPageSize     = 100
)

// EtherscanProvider reads the native balance and recent token transfers
// from the Etherscan account API.
type EtherscanProvider struct {
	baseURL string
	apiKey  string
	client  *upstream.Client
	log     zerolog.Logger
}

// NewEtherscanProvider creates an EtherscanProvider.
func NewEtherscanProvider(baseURL, apiKey string, client *upstream.Client, log zerolog.Logger) *EtherscanProvider {
	if baseURL == "" {
		baseURL = DefaultEtherscanURL
	}
	return &EtherscanProvider{baseURL: baseURL, apiKey: apiKey, client: client, log: log}
}

func (p *EtherscanProvider) Name() string          { return "etherscan" }
func (p *EtherscanProvider) Chain() domain.ChainID { return domain.ChainETH }

// etherscanEnvelope is the common response shape; Result is a string on
// errors and for action=balance, an array for action=tokentx.
type etherscanEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type tokenTransfer struct {
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	Value           string `json:"value"`
}

// FetchBalance implements ports.BalanceProvider. Token history is
// informational; failing to read it does not fail the balance.
func (p *EtherscanProvider) FetchBalance(ctx context.Context, addr domain.Address) (*domain.BalanceQuote, error) {
	wei, err := p.nativeBalance(ctx, addr.Value())
	if err != nil {
		return nil, err
	}

	q := &domain.BalanceQuote{
		AmountBaseUnits: wei,
		AssetSymbol:     domain.ChainETH.NativeAsset(),
		Decimals:        domain.ChainETH.NativeDecimals(),
	}

	tokens, err := p.tokenHoldings(ctx, addr.Value())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.log.Warn().Err(err).Str("address", addr.Value()).Msg("etherscan token history unavailable")
	}
	q.Tokens = tokens
	return q, nil
}

func (p *EtherscanProvider) query(action, address string) url.Values {
	q := url.Values{
		"chainid": {"1"},
		"module":  {"account"},
		"action":  {action},
		"address": {address},
	}
	if p.apiKey != "" {
		q.Set("apikey", p.apiKey)
	}
	return q
}

func (p *EtherscanProvider) nativeBalance(ctx context.Context, address string) (*big.Int, error) {
	q := p.query("balance", address)
	q.Set("tag", "latest")

	var env etherscanEnvelope
	if err := p.client.GetJSON(ctx, p.baseURL, "", q, &env); err != nil {
		return nil, err
	}
	if env.Status != "1" {
		return nil, envelopeError(env)
	}

	var raw string
	if err := json.Unmarshal(env.Result, &raw); err != nil {
		return nil, fmt.Errorf("decode balance result: %w", err)
	}
	return upstream.ParseInt(raw)
}

// tokenHoldings lists tokens seen in the most recent transfers, one entry per
// contract; the first (most recent) transfer of a contract wins.
func (p *EtherscanProvider) tokenHoldings(ctx context.Context, address string) ([]domain.TokenHolding, error) {
	q := p.query("tokentx", address)
	q.Set("sort", "desc")
	q.Set("page", "1")
	q.Set("offset", strconv.Itoa(tokenTxPageSize))

	var env etherscanEnvelope
	if err := p.client.GetJSON(ctx, p.baseURL, "", q, &env); err != nil {
		return nil, err
	}
	if env.Status != "1" {
		// "No transactions found" is a valid empty history.
		if strings.HasPrefix(env.Message, "No transactions") {
			return nil, nil
		}
		return nil, envelopeError(env)
	}

	var transfers []tokenTransfer
	if err := json.Unmarshal(env.Result, &transfers); err != nil {
		return nil, fmt.Errorf("decode tokentx result: %w", err)
	}
	return dedupeTokens(transfers), nil
}

func dedupeTokens(transfers []tokenTransfer) []domain.TokenHolding {
	seen := make(map[string]struct{}, len(transfers))
	var out []domain.TokenHolding
	for _, tx := range transfers {
		contract := strings.ToLower(tx.ContractAddress)
		if contract == "" {
			continue
		}
		if _, dup := seen[contract]; dup {
			continue
		}
		seen[contract] = struct{}{}

		amount, err := upstream.ParseInt(tx.Value)
		if err != nil {
			continue
		}
		decimals, err := strconv.ParseInt(tx.TokenDecimal, 10, 32)
		if err != nil || decimals < 0 {
			decimals = 0
		}
		out = append(out, domain.TokenHolding{
			Contract:  contract,
			Name:      tx.TokenName,
			Symbol:    tx.TokenSymbol,
			Decimals:  int32(decimals),
			RawAmount: amount,
		})
	}
	return out
}

func envelopeError(env etherscanEnvelope) error {
	var detail string
	if err := json.Unmarshal(env.Result, &detail); err != nil || detail == "" {
		detail = env.Message
	}
	if detail == "" {
		return errors.New("etherscan: unexpected response")
	}
	return fmt.Errorf("etherscan: %s", detail)
}
