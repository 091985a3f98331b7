// Package money normalizes monetary input into a single representation.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents).
//   - Parsing never rounds: input more precise than the currency is rejected.
//   - Amounts are finite and non-negative.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount represents a monetary amount as an integer in the
// smallest currency unit.
type Amount = int64

// MaxAmount is the largest single amount accepted, in minor units. It keeps
// sums over many records well inside int64.
const MaxAmount Amount = 1_000_000_000_000_000

// maxExponent bounds the decimal exponent accepted before any rescaling.
const maxExponent = 18

var maxAmount = decimal.NewFromInt(MaxAmount)

// Currency represents a monetary unit with its standard decimal places
type Currency struct {
	Code     Code // 3-letter ISO 4217 code (e.g., "KES")
	Decimals int  // Number of decimal places (0-8)
}

// Common currency instances
var (
	KESCurrency = Currency{Code: KES, Decimals: 2}
	USDCurrency = Currency{Code: USD, Decimals: 2}
	EURCurrency = Currency{Code: EUR, Decimals: 2}
	GBPCurrency = Currency{Code: GBP, Decimals: 2}
	JPYCurrency = Currency{Code: JPY, Decimals: 0}
)

// DefaultCurrency is the currency used when none is configured.
var DefaultCurrency = KESCurrency

// IsValid checks if the currency is valid.
func (c Currency) IsValid() bool {
	if c.Decimals < 0 || c.Decimals > 8 {
		return false
	}
	return c.Code.IsValid()
}

// String returns the currency code as a string
func (c Currency) String() string { return string(c.Code) }

// IsValid checks if the currency code is three upper-case letters.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// NewCurrency builds a Currency and validates it.
func NewCurrency(code string, decimals int) (Currency, error) {
	c := Currency{Code: Code(strings.ToUpper(strings.TrimSpace(code))), Decimals: decimals}
	if !c.IsValid() {
		return Currency{}, fmt.Errorf("%w: %q/%d", ErrInvalidCurrency, code, decimals)
	}
	return c, nil
}

// Parse converts user input such as "12.50" into minor units of c.
func Parse(s string, c Currency) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}
	places := int32(c.Decimals)
	if d.Exponent() > maxExponent {
		return 0, fmt.Errorf("%w: %s", ErrAmountExceedsMaxSafeInt, s)
	}
	if d.Exponent() < -places-maxExponent {
		return 0, fmt.Errorf("%w: %s (%s allows %d)", ErrTooManyDecimals, s, c.Code, c.Decimals)
	}
	if !d.Round(places).Equal(d) {
		return 0, fmt.Errorf("%w: %s (%s allows %d)", ErrTooManyDecimals, s, c.Code, c.Decimals)
	}
	minor := d.Shift(places)
	if minor.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: %s", ErrAmountExceedsMaxSafeInt, s)
	}
	return minor.IntPart(), nil
}

// Format renders minor units as a fixed-point string in the main unit.
func Format(a Amount, c Currency) string {
	return decimal.New(a, -int32(c.Decimals)).StringFixed(int32(c.Decimals))
}

// Money pairs an amount with its currency for display.
type Money struct {
	Amount   Amount
	Currency Currency
}

// String returns e.g. "12.50 KES".
func (m Money) String() string {
	return Format(m.Amount, m.Currency) + " " + string(m.Currency.Code)
}
