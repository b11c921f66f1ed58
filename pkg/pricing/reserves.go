package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

var hundred = decimal.NewFromInt(100)

// NormalizedReserves projects the current reserves onto the target ratio
// while preserving the TVL at the given market price:
//
//	coef = (base*P + quote) / (targetBase*P + targetQuote)
//
// The price must be normalized for decimals, ie. expressed per pool units.
func NormalizedReserves(state PoolState, price decimal.Decimal) (base, quote decimal.Decimal, err error) {
	baseReserve := mathutil.NewFromUint64(state.BaseReserve)
	quoteReserve := mathutil.NewFromUint64(state.QuoteReserve)
	targetBase := mathutil.NewFromUint64(state.TargetBaseReserve)
	targetQuote := mathutil.NewFromUint64(state.TargetQuoteReserve)

	coef, err := mathutil.Div(
		baseReserve.Mul(price).Add(quoteReserve),
		targetBase.Mul(price).Add(targetQuote),
		mathutil.RoundHalfEven,
	)
	if err != nil {
		return
	}

	base = coef.Mul(targetBase)
	quote = coef.Mul(targetQuote)
	return
}

// VirtualReserves returns the additive augmentation of the current reserves
// used to smooth normal-swap pricing. It is a percentage of the normalized
// reserves and never participates in reserve-sufficiency checks.
func VirtualReserves(state PoolState, config SwapConfig, price decimal.Decimal) (base, quote decimal.Decimal, err error) {
	if config.VirtualReservePct == 0 {
		return decimal.Zero, decimal.Zero, nil
	}

	normBase, normQuote, err := NormalizedReserves(state, price)
	if err != nil {
		return
	}
	pct := mathutil.NewFromUint64(config.VirtualReservePct).DivRound(hundred, mathutil.Precision)
	base = normBase.Mul(pct)
	quote = normQuote.Mul(pct)
	return
}

// reservesAfterSwap applies a trade to the current reserves. Amounts are at
// pool integer scale.
func reservesAfterSwap(
	state PoolState, direction SwapDirection, amountIn, amountOut decimal.Decimal,
) (base, quote decimal.Decimal, err error) {
	baseReserve := mathutil.NewFromUint64(state.BaseReserve)
	quoteReserve := mathutil.NewFromUint64(state.QuoteReserve)

	switch direction {
	case SellBase:
		base = baseReserve.Add(amountIn)
		quote = quoteReserve.Sub(amountOut)
	case SellQuote:
		base = baseReserve.Sub(amountOut)
		quote = quoteReserve.Add(amountIn)
	default:
		err = ErrInvalidSwapDirection
	}
	return
}

// CheckSufficientReserves reports whether executing the trade leaves both
// post-trade reserves strictly above the minimum reserve limit, a percentage
// of the normalized reserves recomputed from the post-trade state. Amounts
// are at pool integer scale, the price is the normalized mid price.
func CheckSufficientReserves(
	pool PoolInfo, direction SwapDirection,
	amountIn, amountOut decimal.Decimal, price decimal.Decimal,
) (bool, error) {
	baseAfter, quoteAfter, err := reservesAfterSwap(
		pool.State, direction, amountIn, amountOut,
	)
	if err != nil {
		return false, err
	}
	if baseAfter.Sign() <= 0 || quoteAfter.Sign() <= 0 {
		return false, nil
	}

	stateAfter := pool.State
	stateAfter.BaseReserve = uint64(baseAfter.IntPart())
	stateAfter.QuoteReserve = uint64(quoteAfter.IntPart())

	normBase, normQuote, err := NormalizedReserves(stateAfter, price)
	if err != nil {
		return false, err
	}

	limit := mathutil.NewFromUint64(pool.Config.MinReserveLimitPct).
		DivRound(hundred, mathutil.Precision)

	return baseAfter.GreaterThan(normBase.Mul(limit)) &&
		quoteAfter.GreaterThan(normQuote.Mul(limit)), nil
}
