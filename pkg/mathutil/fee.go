package mathutil

import (
	"github.com/shopspring/decimal"
)

// Fraction is a num/den fee or share ratio. The zero value means "no fee".
type Fraction struct {
	Num uint64
	Den uint64
}

// IsZero returns true for the no-fee fraction.
func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// Valid reports whether the fraction is a well formed fee, ie. den is not
// zero and num does not exceed den.
func (f Fraction) Valid() bool {
	return f.Den > 0 && f.Num <= f.Den
}

// Decimal returns the fraction value as decimal.
func (f Fraction) Decimal() decimal.Decimal {
	if f.Den == 0 {
		return decimal.Zero
	}
	d, _ := Ratio(f.Num, f.Den, RoundHalfEven)
	return d
}

// LessFee subtracts the fraction fee from amount, returning the remaining
// amount and the calculated fee. The fee is never rounded in favor of the
// amount: the remainder is floored.
func LessFee(amount decimal.Decimal, fee Fraction) (remaining, calculatedFee decimal.Decimal) {
	if fee.IsZero() || !fee.Valid() {
		return amount, decimal.Zero
	}
	calculatedFee, _ = Div(
		amount.Mul(NewFromUint64(fee.Num)), NewFromUint64(fee.Den), RoundCeil,
	)
	remaining = amount.Sub(calculatedFee)
	return
}

// PlusFee grosses up amount so that subtracting the fraction fee from the
// result gives back at least amount: gross = amount * den / (den - num).
func PlusFee(amount decimal.Decimal, fee Fraction) (grossed, calculatedFee decimal.Decimal) {
	if fee.IsZero() || !fee.Valid() || fee.Num == fee.Den {
		return amount, decimal.Zero
	}
	grossed, _ = Div(
		amount.Mul(NewFromUint64(fee.Den)), NewFromUint64(fee.Den-fee.Num), RoundCeil,
	)
	calculatedFee = grossed.Sub(amount)
	return
}
