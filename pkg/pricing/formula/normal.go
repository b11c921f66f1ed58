package formula

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

var one = decimal.NewFromInt(1)

// NormalOpts carries the inputs of the normal-swap curve. Reserves are at
// pool integer scale and oriented by trade direction: ReserveIn is the
// reserve of the token the trader sells. MarketPrice is the oracle price of
// the in token expressed in out tokens, already normalized for decimals.
type NormalOpts struct {
	ReserveIn        decimal.Decimal
	ReserveOut       decimal.Decimal
	TargetReserveIn  decimal.Decimal
	TargetReserveOut decimal.Decimal
	MarketPrice      decimal.Decimal
}

func (o NormalOpts) validate() error {
	if o.ReserveIn.Sign() <= 0 || o.ReserveOut.Sign() <= 0 ||
		o.TargetReserveIn.Sign() <= 0 || o.TargetReserveOut.Sign() <= 0 {
		return ErrInvalidReserves
	}
	if o.MarketPrice.Sign() <= 0 {
		return ErrInvalidReserves
	}
	return nil
}

func (o NormalOpts) swapped() (NormalOpts, error) {
	invPrice, err := mathutil.Div(one, o.MarketPrice, mathutil.RoundHalfEven)
	if err != nil {
		return NormalOpts{}, err
	}
	return NormalOpts{
		ReserveIn:        o.ReserveOut,
		ReserveOut:       o.ReserveIn,
		TargetReserveIn:  o.TargetReserveOut,
		TargetReserveOut: o.TargetReserveIn,
		MarketPrice:      invPrice,
	}, nil
}

// impliedOut is the linear output m * (b/a) * P * (A/B), a strict upper
// bound on any curve output.
func (o NormalOpts) impliedOut(m decimal.Decimal) (decimal.Decimal, error) {
	num := m.Mul(o.ReserveOut).Mul(o.MarketPrice).Mul(o.TargetReserveIn)
	den := o.ReserveIn.Mul(o.TargetReserveOut)
	return mathutil.Div(num, den, mathutil.RoundHalfEven)
}

// impliedPrice is the marginal price P * (b/a) * (A/B) at zero trade size.
func (o NormalOpts) impliedPrice() (decimal.Decimal, error) {
	num := o.MarketPrice.Mul(o.ReserveOut).Mul(o.TargetReserveIn)
	den := o.ReserveIn.Mul(o.TargetReserveOut)
	return mathutil.Div(num, den, mathutil.RoundHalfEven)
}

// NormalSwap is the general logarithmic curve anchored on the oracle price:
//
//	output = b - b * (a / (a + m))^(P*A/B)
type NormalSwap struct{}

// NewNormalSwapFormula ...
func NewNormalSwapFormula() NormalSwap {
	return NormalSwap{}
}

// closedForm evaluates the curve for a signed input m. A negative m runs the
// inverse branch and yields a negative output. The second return value is
// false when a+m is not positive, ie. the request exceeds the reserve.
func (NormalSwap) closedForm(opts NormalOpts, m decimal.Decimal) (decimal.Decimal, bool, error) {
	aPlusM := opts.ReserveIn.Add(m)
	if aPlusM.Sign() <= 0 {
		return decimal.Decimal{}, false, nil
	}

	core, err := mathutil.Div(opts.ReserveIn, aPlusM, mathutil.RoundCeil)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	exp, err := mathutil.Div(
		opts.MarketPrice.Mul(opts.TargetReserveIn),
		opts.TargetReserveOut,
		mathutil.RoundFloor,
	)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	pw := mathutil.Pow(core, exp)
	out := opts.ReserveOut.Sub(opts.ReserveOut.Mul(pw).RoundCeil(0))
	return out, true, nil
}

// approximatedOut tightens the closed form from below with a Taylor-style
// bound. The second return value is false when the bound does not apply.
func (NormalSwap) approximatedOut(opts NormalOpts, m decimal.Decimal) (decimal.Decimal, bool, error) {
	expReal, err := mathutil.Div(
		opts.MarketPrice.Mul(opts.TargetReserveIn),
		opts.TargetReserveOut,
		mathutil.RoundHalfEven,
	)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	expCeil := expReal.RoundCeil(0)
	if expCeil.Sign() <= 0 {
		return decimal.Decimal{}, false, nil
	}

	// Outside this regime the bound is not useful.
	if opts.ReserveIn.LessThanOrEqual(m.Mul(expCeil)) ||
		opts.ReserveOut.LessThanOrEqual(m) {
		return decimal.Decimal{}, false, nil
	}

	base, err := mathutil.Div(
		opts.ReserveIn, opts.ReserveIn.Add(m), mathutil.RoundCeil,
	)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	coreHigh := mathutil.PowInt(base, uint64(expCeil.IntPart()))
	coreLow, err := mathutil.Div(
		opts.ReserveIn.Sub(m.Mul(expCeil)), opts.ReserveIn, mathutil.RoundFloor,
	)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	k, err := mathutil.Div(coreHigh, coreLow, mathutil.RoundCeil)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	implied, err := opts.impliedOut(m)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	diff := k.Sub(one).Mul(opts.ReserveOut.Sub(implied))
	if implied.Abs().LessThanOrEqual(diff) {
		return decimal.Decimal{}, false, nil
	}

	approx := implied.Sub(diff).RoundFloor(0)
	if approx.GreaterThan(implied) {
		return decimal.Decimal{}, false, ErrInternalInvariant
	}
	return approx, true, nil
}

// OutGivenIn returns the output amount the curve produces for amountIn,
// taking the best of the closed form and the approximation, and the price
// impact of the trade.
func (f NormalSwap) OutGivenIn(opts NormalOpts, amountIn decimal.Decimal) (*SwapQuote, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if amountIn.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	out, ok, err := f.closedForm(opts, amountIn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientLiquidity
	}

	if approx, ok, err := f.approximatedOut(opts, amountIn); err != nil {
		return nil, err
	} else if ok {
		out = mathutil.Max(out, approx)
	}
	if out.Sign() < 0 {
		out = decimal.Zero
	}

	implied, err := opts.impliedOut(amountIn)
	if err != nil {
		return nil, err
	}
	if out.GreaterThan(implied) {
		return nil, ErrInternalInvariant
	}

	impliedPrice, err := opts.impliedPrice()
	if err != nil {
		return nil, err
	}

	return &SwapQuote{
		Amount:      out,
		PriceImpact: priceImpact(impliedPrice, out, amountIn),
	}, nil
}

// InGivenOut returns the input amount required to receive amountOut. The
// shared closed form runs on the reversed direction with a negative input,
// so every rounding that favors the pool on the way out charges the trader
// more on the way in.
func (f NormalSwap) InGivenOut(opts NormalOpts, amountOut decimal.Decimal) (*SwapQuote, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if amountOut.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	swapped, err := opts.swapped()
	if err != nil {
		return nil, err
	}
	negIn, ok, err := f.closedForm(swapped, amountOut.Neg())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientLiquidity
	}

	amountIn := negIn.Neg()
	if amountIn.Sign() <= 0 {
		return nil, ErrInsufficientLiquidity
	}

	// The conservative bound seen from the output side: the produced output
	// must not exceed the linear output of the charged input.
	implied, err := opts.impliedOut(amountIn)
	if err != nil {
		return nil, err
	}
	if amountOut.GreaterThan(implied) {
		return nil, ErrInternalInvariant
	}

	impliedPrice, err := opts.impliedPrice()
	if err != nil {
		return nil, err
	}

	return &SwapQuote{
		Amount:      amountIn,
		PriceImpact: priceImpact(impliedPrice, amountOut, amountIn),
	}, nil
}
