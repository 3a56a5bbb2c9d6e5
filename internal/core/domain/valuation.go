package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidExchangeRate is returned for non-positive exchange rates.
var ErrInvalidExchangeRate = errors.New("exchange rate must be positive")

// ValuationResult combines a balance with its price.
//
// Price == nil means the balance is known but its value is not; PriceErr then
// says why. StalePriceUsed marks a value computed from an expired snapshot.
type ValuationResult struct {
	Balance        *BalanceQuote
	Price          *PriceSnapshot
	ValueUSD       *decimal.Decimal
	StalePriceUsed bool
	PriceErr       error
}

// HasValue reports whether a USD value could be computed.
func (v *ValuationResult) HasValue() bool {
	return v.ValueUSD != nil
}

// ValueIn converts the USD value into a display currency with the given rate.
// It returns false when no value is available.
func (v *ValuationResult) ValueIn(rate decimal.Decimal) (decimal.Decimal, bool, error) {
	if v.ValueUSD == nil {
		return decimal.Zero, false, nil
	}
	out, err := ConvertCurrency(*v.ValueUSD, rate)
	if err != nil {
		return decimal.Zero, false, err
	}
	return out, true, nil
}

// Combine computes the USD value of a balance at a price.
func Combine(balance *BalanceQuote, price PriceSnapshot) decimal.Decimal {
	return balance.DisplayAmount().Mul(price.USDPrice)
}

// ConvertCurrency applies a USD->local exchange rate.
func ConvertCurrency(valueUSD, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, ErrInvalidExchangeRate
	}
	return valueUSD.Mul(rate), nil
}

// RoundFiat rounds a fiat amount to cents.
func RoundFiat(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
