package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLessFee(t *testing.T) {
	fee := Fraction{Num: 30, Den: 10000}
	remaining, calculated := LessFee(decimal.NewFromInt(100), fee)

	assert.True(t, calculated.Equal(decimal.RequireFromString("0.03")))
	assert.True(t, remaining.Equal(decimal.RequireFromString("99.97")))
	assert.True(t, remaining.Add(calculated).Equal(decimal.NewFromInt(100)))
}

func TestLessFeeZero(t *testing.T) {
	remaining, calculated := LessFee(decimal.NewFromInt(100), Fraction{})
	assert.True(t, remaining.Equal(decimal.NewFromInt(100)))
	assert.True(t, calculated.IsZero())
}

func TestPlusFeeRoundTrip(t *testing.T) {
	fee := Fraction{Num: 30, Den: 10000}
	amount := decimal.RequireFromString("99.97")

	grossed, calculated := PlusFee(amount, fee)
	assert.True(t, grossed.Sub(calculated).Equal(amount))

	// Subtracting the fee from the grossed amount gives back at least the
	// original amount.
	remaining, _ := LessFee(grossed, fee)
	assert.True(t, remaining.GreaterThanOrEqual(amount.Sub(decimal.New(1, -Precision))))
}

func TestFractionValid(t *testing.T) {
	assert.True(t, Fraction{Num: 1, Den: 2}.Valid())
	assert.True(t, Fraction{Num: 2, Den: 2}.Valid())
	assert.False(t, Fraction{Num: 3, Den: 2}.Valid())
	assert.False(t, Fraction{Num: 1, Den: 0}.Valid())
}
