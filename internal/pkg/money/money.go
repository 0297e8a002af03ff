// Package money holds the decimal conventions for CHF amounts.
//
// Amounts cross the API and storage boundaries as strings, are parsed into
// decimal.Decimal exactly once on the way in, and are formatted back to fixed
// 2-decimal strings exactly once on the way out. Everything in between runs on
// exact decimal arithmetic.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a CHF amount string. Amounts must be non-negative and
// carry at most 2 decimal places (Rappen precision).
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	return d, nil
}

// ParseRate parses a percentage rate string (e.g. "5.3" for 5.3%).
// Rates may carry more than 2 decimal places.
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate %q must not be negative", s)
	}
	return d, nil
}

// Round2 rounds to Rappen precision (2 decimal places, half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders a decimal as a fixed 2-decimal string for storage and APIs.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Percent applies a percentage rate to a base: base * rate / 100, unrounded.
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100))
}
