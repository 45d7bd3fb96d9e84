package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). $10.50 is stored as 1050.
type Money int64

// MinorUnitScale is the number of decimal places represented by one minor unit.
const MinorUnitScale = 2

var maxMoneyDecimal = decimal.NewFromInt(math.MaxInt64)

// MoneyFromDecimal converts a major-unit decimal into Money. It fails when the value
// has more than two decimal places or does not fit in minor units. Sign is preserved;
// positivity is checked by the ledger.
func MoneyFromDecimal(d decimal.Decimal) (Money, bool) {
	if !d.Equal(d.Truncate(MinorUnitScale)) {
		return 0, false
	}
	minor := d.Shift(MinorUnitScale)
	if minor.Abs().GreaterThan(maxMoneyDecimal) {
		return 0, false
	}
	return Money(minor.IntPart()), true
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MinorUnitScale)
}

// String formats the amount in major units with two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(MinorUnitScale)
}

// CanAdd reports whether m+other stays within range.
func (m Money) CanAdd(other Money) bool {
	if other > 0 {
		return m <= math.MaxInt64-other
	}
	return m >= math.MinInt64-other
}
