// Package formula implements the curve kernels of the oracle-anchored AMM:
// the normal-swap logarithmic curve with its Taylor-style approximation, and
// the flat stable-swap curve. All kernels are pure and operate on reserves at
// the pool integer scale; rounding is chosen at every site so that the pool
// never pays out more than the linear implied output.
package formula

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidReserves is returned when a reserve or target is not positive.
	ErrInvalidReserves = errors.New("reserves and targets must be positive")
	// ErrInvalidSlope is returned when the slope is outside (0, 1].
	ErrInvalidSlope = errors.New("slope must be in (0, 1]")
	// ErrInvalidAmount is returned on a non-positive trade amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientLiquidity is returned when the requested output cannot
	// be served by the curve.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for requested amount")
	// ErrInternalInvariant signals a post-condition violation inside a
	// kernel. It is never recovered by the callers.
	ErrInternalInvariant = errors.New("internal invariant violation")
)

// SwapQuote is the raw outcome of a kernel evaluation: an amount at pool
// integer scale and the relative deviation of the executed price from the
// implied one.
type SwapQuote struct {
	Amount      decimal.Decimal
	PriceImpact decimal.Decimal
}

// priceImpact computes |implied - actual| / actual where actual = amount/m.
// A zero trade has no impact by definition; a worthless one deviates fully.
func priceImpact(implied, amount, m decimal.Decimal) decimal.Decimal {
	if m.IsZero() {
		return decimal.Zero
	}
	if amount.IsZero() {
		return decimal.NewFromInt(1)
	}
	actual := amount.DivRound(m, impactPrecision)
	return implied.Sub(actual).Abs().DivRound(actual, impactPrecision)
}

// impactPrecision is the number of fractional digits kept by the price
// impact report. Impact is display-only and never feeds back into amounts.
const impactPrecision int32 = 20
