// Package mathutil provides rational arithmetic with explicit, per-operation
// rounding on top of shopspring/decimal. The package never touches the
// library's global division precision: every operation that can lose digits
// takes the rounding mode and works at the package precision.
package mathutil

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional decimal digits carried by divisions
// and square roots. It covers the product of two 64-bit reserves scaled by
// WAD with room to spare.
const Precision int32 = 40

// WadDecimals is the scale of WAD-encoded config values like the slope.
const WadDecimals int32 = 18

// RoundingMode selects how an operation resolves digits beyond Precision.
type RoundingMode int

const (
	// RoundHalfEven is banker's rounding, used for display-only conversions.
	RoundHalfEven RoundingMode = iota
	// RoundCeil rounds towards positive infinity.
	RoundCeil
	// RoundFloor rounds towards negative infinity.
	RoundFloor
)

var (
	// ErrDivisionByZero ...
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeSqrt ...
	ErrNegativeSqrt = errors.New("square root of negative value")
)

// floatRoundUpEpsilon absorbs the downward error of the float64 pow path.
// See Pow.
var floatRoundUpEpsilon = decimal.New(6, -17)

var oneUlp = decimal.New(1, -Precision)

// NewFromUint64 converts a uint64 amount to decimal.Decimal without going
// through int64.
func NewFromUint64(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

// NewFromWad converts a WAD-scaled uint64 to its rational value.
func NewFromWad(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), -WadDecimals)
}

// Div divides x by y keeping Precision fractional digits, resolving the
// remainder according to mode.
func Div(x, y decimal.Decimal, mode RoundingMode) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}

	switch mode {
	case RoundCeil, RoundFloor:
		q, r := x.QuoRem(y, Precision)
		if r.IsZero() {
			return q, nil
		}
		// QuoRem truncates towards zero: positive quotients are already
		// floored, negative ones already ceiled.
		positive := x.Sign()*y.Sign() > 0
		if mode == RoundCeil && positive {
			return q.Add(oneUlp), nil
		}
		if mode == RoundFloor && !positive {
			return q.Sub(oneUlp), nil
		}
		return q, nil
	default:
		return x.DivRound(y, Precision+2).RoundBank(Precision), nil
	}
}

// Ratio divides two uint64 numbers x / y with the given rounding mode.
func Ratio(x, y uint64, mode RoundingMode) (decimal.Decimal, error) {
	return Div(NewFromUint64(x), NewFromUint64(y), mode)
}

// Sqrt returns the square root of x with Precision fractional digits. The
// root is computed exactly on integers; mode decides the side of the last
// digit when x is not a perfect square at this precision.
func Sqrt(x decimal.Decimal, mode RoundingMode) (decimal.Decimal, error) {
	if x.IsNegative() {
		return decimal.Decimal{}, ErrNegativeSqrt
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}

	n := x.Shift(2 * Precision).Truncate(0).BigInt()
	root := new(big.Int).Sqrt(n)
	exact := new(big.Int).Mul(root, root).Cmp(n) == 0

	res := decimal.NewFromBigInt(root, -Precision)
	if !exact && mode == RoundCeil {
		res = res.Add(oneUlp)
	}
	return res, nil
}

// PowInt raises x to a small non-negative integer power by binary
// exponentiation. Multiplication is exact, so no rounding mode is needed.
func PowInt(x decimal.Decimal, n uint64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	base := x
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Pow evaluates base**exponent as a real-number power through float64 and
// adds floatRoundUpEpsilon to the result. This is a deliberate approximation:
// the epsilon compensates the downward error of the float conversion, and the
// callers re-establish the conservative bound with a ceiled multiplication
// and a comparison against the linear implied output.
func Pow(base, exponent decimal.Decimal) decimal.Decimal {
	b, _ := base.Float64()
	e, _ := exponent.Float64()
	return decimal.NewFromFloat(math.Pow(b, e)).Add(floatRoundUpEpsilon)
}

// Max returns the greater of x and y.
func Max(x, y decimal.Decimal) decimal.Decimal {
	if x.GreaterThan(y) {
		return x
	}
	return y
}

// Exp10 returns 10**n for a possibly negative n.
func Exp10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}
