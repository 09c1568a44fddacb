// Package money holds rupee rounding helpers shared by the pricing engines.
package money

import "github.com/shopspring/decimal"

// Round rounds v to the nearest whole rupee, halves away from zero.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(0).Float64()
	return f
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Mul multiplies v by factor using decimal arithmetic, so that 50 * 1.1 is exactly 55.
func Mul(v, factor float64) float64 {
	f, _ := decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(factor)).Float64()
	return f
}

// Midpoint returns the rounded midpoint of a and b.
func Midpoint(a, b float64) float64 {
	mid := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Div(decimal.NewFromInt(2))
	f, _ := mid.Round(0).Float64()
	return f
}
