package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	daysPerYear       = 365
	percentMultiplier = 100
	displayScale      = 2
)

// ParseSample parses a raw APR sample. The boolean reports whether the
// data source actually supplied the window: empty or malformed strings
// count as absent.
func ParseSample(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// LenientDecimal parses s, coercing missing or malformed input to zero.
// The pipeline never raises for data-quality problems.
func LenientDecimal(s string) decimal.Decimal {
	v, _ := ParseSample(s)
	return v
}

// FromFixedPoint converts a fixed-point integer string with the given
// number of decimals into a decimal value. Malformed input yields zero.
func FromFixedPoint(raw string, decimals int32) decimal.Decimal {
	v, ok := ParseSample(raw)
	if !ok {
		return decimal.Zero
	}
	return v.Shift(-decimals)
}

// CompoundDaily converts an APR percentage into the equivalent APY
// percentage under daily compounding: (1 + apr/100/365)^365 - 1.
// Float math is acceptable here: the result is a display-rounded
// percentage, not a value-transfer amount.
func CompoundDaily(aprPercent decimal.Decimal) decimal.Decimal {
	apr, _ := aprPercent.Float64()
	apy := math.Pow(1+apr/percentMultiplier/daysPerYear, daysPerYear) - 1
	if math.IsNaN(apy) || math.IsInf(apy, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(apy * percentMultiplier)
}

// RoundPercent rounds a percentage to display precision (two places).
func RoundPercent(v decimal.Decimal) decimal.Decimal {
	return v.Round(displayScale)
}
