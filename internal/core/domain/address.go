package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddressFormat is returned when an address does not match its chain's grammar.
var ErrInvalidAddressFormat = errors.New("invalid address format")

var (
	// Legacy P2PKH / P2SH: base58 alphabet (no 0, O, I, l).
	btcLegacyRe = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
	// Bech32 segwit and bech32m taproot share the charset and length bounds.
	btcBech32Re = regexp.MustCompile(`^bc1[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{11,71}$`)
)

// Address is a chain-qualified address whose value has passed syntactic validation.
type Address struct {
	chain ChainID
	value string
}

// NewAddress validates raw against the grammar of chain.
func NewAddress(chain ChainID, raw string) (Address, error) {
	if !chain.IsSupported() {
		return Address{}, ErrUnsupportedChain
	}
	raw = strings.TrimSpace(raw)
	if !ValidateAddress(chain, raw) {
		return Address{}, ErrInvalidAddressFormat
	}
	return Address{chain: chain, value: raw}, nil
}

// Chain returns the address's chain.
func (a Address) Chain() ChainID { return a.chain }

// Value returns the address string as supplied.
func (a Address) Value() string { return a.value }

func (a Address) String() string { return string(a.chain) + ":" + a.value }

// ValidateAddress performs a syntactic check only. Checksums are not verified,
// so a string can pass and still not be a deliverable address.
func ValidateAddress(chain ChainID, raw string) bool {
	switch chain {
	case ChainBTC:
		return validateBTC(raw)
	case ChainETH:
		return validateETH(raw)
	default:
		return false
	}
}

func validateBTC(s string) bool {
	if btcLegacyRe.MatchString(s) {
		return true
	}
	// Bech32 strings must not mix case.
	lower := strings.ToLower(s)
	if s != lower && s != strings.ToUpper(s) {
		return false
	}
	return btcBech32Re.MatchString(lower)
}

func validateETH(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}
