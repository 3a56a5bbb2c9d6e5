package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceQuote is a provider-agnostic balance observation in exact base units.
type BalanceQuote struct {
	Address         Address
	AmountBaseUnits *big.Int
	AssetSymbol     string
	Decimals        int32
	SourceProvider  string
	FetchedAt       time.Time
	Tokens          []TokenHolding // ETH only; empty for BTC
}

// TokenHolding is a token observed in an address's transfer history.
type TokenHolding struct {
	Contract  string
	Name      string
	Symbol    string
	Decimals  int32
	RawAmount *big.Int
	// ValueUSD is nil when no price is known for the contract.
	ValueUSD *decimal.Decimal
}

// DisplayAmount converts base units into display units (base / 10^decimals).
func (b *BalanceQuote) DisplayAmount() decimal.Decimal {
	return ToDisplayUnits(b.AmountBaseUnits, b.Decimals)
}

// FormatDisplay renders the display amount with exactly Decimals fractional digits.
func (b *BalanceQuote) FormatDisplay() string {
	return b.DisplayAmount().StringFixed(b.Decimals)
}

// IsEmpty reports a verified zero balance.
func (b *BalanceQuote) IsEmpty() bool {
	return b.AmountBaseUnits != nil && b.AmountBaseUnits.Sign() == 0
}

// ToDisplayUnits shifts an integer amount by decimals without floating point.
func ToDisplayUnits(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}
