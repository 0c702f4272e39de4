package money

import "github.com/shopspring/decimal"

// Prices move through the cart and checkout as int64 minor units (cents).
// Display decimals are converted exactly once, on the way in, with a single
// rounding rule: round half away from zero to two decimal places. The
// reverse conversion only happens when formatting API responses.

var hundred = decimal.NewFromInt(100)

// FromFloat converts a display-decimal price to minor units.
func FromFloat(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Mul(hundred).IntPart()
}

// FromString converts a decimal string like "10.50" to minor units.
func FromString(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Round(2).Mul(hundred).IntPart(), nil
}

// Format renders minor units as a fixed two-decimal string.
func Format(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
