// Package money rounds and formats CHF amounts for reports.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	half     = decimal.NewFromFloat(0.5)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// roundHalfUp rounds d to places decimals, halves towards +Inf.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// Round rounds v to places decimals with halves rounded up.
func Round(v float64, places int32) float64 {
	return roundHalfUp(decimal.NewFromFloat(v), places).InexactFloat64()
}

// Format renders v as "CHF 1.2M", "CHF 350k" or "CHF 120" depending on its
// magnitude.
func Format(v float64) string {
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "CHF " + d.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "CHF " + roundHalfUp(d.Div(thousand), 0).String() + "k"
	default:
		return "CHF " + roundHalfUp(d, 0).String()
	}
}
