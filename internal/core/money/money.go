// Package money holds the fixed-point helpers used for every currency amount.
// Amounts travel as float64 but are always rounded to two places through
// shopspring/decimal so that sums of rounded parts stay exact.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept for currency values.
const Places = 2

// Ceiling is the largest amount the helpers return. Results beyond the float64
// range saturate here instead of becoming infinite.
const Ceiling = math.MaxFloat64

// Saturated reports whether v hit the representable range.
func Saturated(v float64) bool {
	return math.Abs(v) >= Ceiling || math.IsInf(v, 0)
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return float(dec(v).Round(Places))
}

// Sum adds the values in decimal space and rounds the result to two places.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return float(total.Round(Places))
}

// Percent returns pct percent of base, rounded to two places.
func Percent(base, pct float64) float64 {
	return float(dec(base).
		Mul(dec(pct)).
		Div(decimal.NewFromInt(100)).
		Round(Places))
}

// Mul multiplies a by b and rounds the product to two places.
func Mul(a, b float64) float64 {
	return float(dec(a).Mul(dec(b)).Round(Places))
}

// dec converts v, mapping NaN to zero and infinities to the ceiling;
// decimal.NewFromFloat panics on both.
func dec(v float64) decimal.Decimal {
	switch {
	case math.IsNaN(v):
		return decimal.Zero
	case math.IsInf(v, 1):
		return decimal.NewFromFloat(Ceiling)
	case math.IsInf(v, -1):
		return decimal.NewFromFloat(-Ceiling)
	}
	return decimal.NewFromFloat(v)
}

func float(d decimal.Decimal) float64 {
	v := d.InexactFloat64()
	switch {
	case math.IsInf(v, 1):
		return Ceiling
	case math.IsInf(v, -1):
		return -Ceiling
	}
	return v
}

// Clamp bounds v by the optional floor and ceiling.
func Clamp(v float64, floor, ceiling *float64) float64 {
	if floor != nil && v < *floor {
		v = *floor
	}
	if ceiling != nil && v > *ceiling {
		v = *ceiling
	}
	return v
}

// StartedUnits counts how many units of size are needed to cover excess,
// counting a partial unit as a whole one. Non-positive inputs yield zero.
func StartedUnits(excess, size float64) int64 {
	if !(excess > 0) || !(size > 0) {
		return 0
	}
	units := dec(excess).Div(dec(size)).Ceil()
	if units.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return math.MaxInt64
	}
	return units.IntPart()
}
