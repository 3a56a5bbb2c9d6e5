package domain

import (
	"errors"
	"strings"
)

// ChainID identifies a supported blockchain.
type ChainID string

const (
	ChainBTC ChainID = "BTC"
	ChainETH ChainID = "ETH"
)

// ErrUnsupportedChain is returned for chain identifiers outside the supported set.
var ErrUnsupportedChain = errors.New("unsupported chain")

// chainInfo describes the native asset of a chain.
type chainInfo struct {
	asset    string
	decimals int32
}

var chains = map[ChainID]chainInfo{
	ChainBTC: {asset: "BTC", decimals: 8},
	ChainETH: {asset: "ETH", decimals: 18},
}

// ParseChainID parses a chain identifier case-insensitively.
func ParseChainID(s string) (ChainID, error) {
	id := ChainID(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := chains[id]; !ok {
		return "", ErrUnsupportedChain
	}
	return id, nil
}

// SupportedChains returns every supported chain in a stable order.
func SupportedChains() []ChainID {
	return []ChainID{ChainBTC, ChainETH}
}

// IsSupported reports whether the chain is known.
func (c ChainID) IsSupported() bool {
	_, ok := chains[c]
	return ok
}

// NativeAsset returns the symbol of the chain's native asset.
func (c ChainID) NativeAsset() string {
	return chains[c].asset
}

// NativeDecimals returns the number of decimals of the chain's native asset.
func (c ChainID) NativeDecimals() int32 {
	return chains[c].decimals
}
