package formula

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

var (
	two  = decimal.NewFromInt(2)
	four = decimal.NewFromInt(4)
)

// StableOpts carries the inputs of the stable-swap curve. Reserves are at
// pool integer scale and oriented by trade direction. Price is the static
// stable price of the in token in out tokens (a power of ten bridging the
// two decimals), Slope the flatness parameter in (0, 1].
type StableOpts struct {
	ReserveIn  decimal.Decimal
	ReserveOut decimal.Decimal
	Price      decimal.Decimal
	Slope      decimal.Decimal
}

func (o StableOpts) validate() error {
	if o.ReserveIn.Sign() <= 0 || o.ReserveOut.Sign() <= 0 {
		return ErrInvalidReserves
	}
	if o.Price.Sign() <= 0 {
		return ErrInvalidReserves
	}
	if o.Slope.Sign() <= 0 || o.Slope.GreaterThan(one) {
		return ErrInvalidSlope
	}
	return nil
}

func (o StableOpts) swapped() (StableOpts, error) {
	invPrice, err := mathutil.Div(one, o.Price, mathutil.RoundHalfEven)
	if err != nil {
		return StableOpts{}, err
	}
	return StableOpts{
		ReserveIn:  o.ReserveOut,
		ReserveOut: o.ReserveIn,
		Price:      invPrice,
		Slope:      o.Slope,
	}, nil
}

// StableSwap is the flat curve for pools of tokens that track the same
// value. The curve first solves for the balanced point of the current
// invariant surface, then prices the trade against it.
type StableSwap struct{}

// NewStableSwapFormula ...
func NewStableSwapFormula() StableSwap {
	return StableSwap{}
}

// BalancedReserves solves alpha*x^2 + beta*x + gamma = 0 for the positive
// root, the in-side reserve whose ratio to its counterpart equals the stable
// price on the current invariant surface:
//
//	alpha  =  (2-s) * p
//	-beta  =  (1-s) * (p*a + b)
//	-gamma =  s * a * b
func (StableSwap) BalancedReserves(opts StableOpts) (balancedIn, balancedOut decimal.Decimal, err error) {
	if err = opts.validate(); err != nil {
		return
	}

	a, b := opts.ReserveIn, opts.ReserveOut
	s, p := opts.Slope, opts.Price

	alpha := two.Sub(s).Mul(p)
	minusBeta := one.Sub(s).Mul(p.Mul(a).Add(b))
	minusGamma := s.Mul(a).Mul(b)

	discriminant := minusBeta.Mul(minusBeta).Add(four.Mul(alpha).Mul(minusGamma))
	root, err := mathutil.Sqrt(discriminant, mathutil.RoundCeil)
	if err != nil {
		return
	}

	balancedIn, err = mathutil.Div(minusBeta.Add(root), two.Mul(alpha), mathutil.RoundCeil)
	if err != nil {
		return
	}
	balancedOut = balancedIn.Mul(p)
	return
}

// closedForm evaluates the stable curve for a signed input m. A negative m
// runs the inverse branch and yields a negative output. The second return
// value is false when the denominator is not positive, ie. the request
// drains the reserve.
func (f StableSwap) closedForm(opts StableOpts, m decimal.Decimal) (decimal.Decimal, bool, error) {
	balancedIn, balancedOut, err := f.BalancedReserves(opts)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	a, b := opts.ReserveIn, opts.ReserveOut
	s := opts.Slope
	oneMinusS := one.Sub(s)

	outShift, err := mathutil.Div(balancedOut.Mul(oneMinusS), s, mathutil.RoundFloor)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	multiplicand := b.Add(outShift)

	num := oneMinusS.Mul(balancedIn).Add(s.Mul(a))
	den := oneMinusS.Mul(balancedIn).Add(s.Mul(a.Add(m)))
	if den.Sign() <= 0 {
		return decimal.Decimal{}, false, nil
	}
	ratio, err := mathutil.Div(num, den, mathutil.RoundFloor)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	multiplier := one.Sub(ratio)

	out := multiplicand.Mul(multiplier).RoundFloor(0)
	return out, true, nil
}

// impliedPrice is the marginal price at the balanced point.
func (f StableSwap) impliedPrice(opts StableOpts) (decimal.Decimal, error) {
	balancedIn, balancedOut, err := f.BalancedReserves(opts)
	if err != nil {
		return decimal.Decimal{}, err
	}

	oneMinusS := one.Sub(opts.Slope)
	outShift, err := mathutil.Div(
		balancedOut.Mul(oneMinusS), opts.Slope, mathutil.RoundHalfEven,
	)
	if err != nil {
		return decimal.Decimal{}, err
	}
	inShift, err := mathutil.Div(
		balancedIn.Mul(oneMinusS), opts.Slope, mathutil.RoundHalfEven,
	)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return mathutil.Div(
		opts.ReserveOut.Add(outShift),
		opts.ReserveIn.Add(inShift),
		mathutil.RoundHalfEven,
	)
}

// OutGivenIn returns the output amount of the stable curve for amountIn and
// the price impact of the trade.
func (f StableSwap) OutGivenIn(opts StableOpts, amountIn decimal.Decimal) (*SwapQuote, error) {
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
	if out.Sign() < 0 {
		out = decimal.Zero
	}

	implied, err := f.impliedPrice(opts)
	if err != nil {
		return nil, err
	}

	return &SwapQuote{
		Amount:      out,
		PriceImpact: priceImpact(implied, out, amountIn),
	}, nil
}

// InGivenOut returns the input amount required to receive amountOut from the
// stable curve.
func (f StableSwap) InGivenOut(opts StableOpts, amountOut decimal.Decimal) (*SwapQuote, error) {
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

	implied, err := f.impliedPrice(opts)
	if err != nil {
		return nil, err
	}

	return &SwapQuote{
		Amount:      amountIn,
		PriceImpact: priceImpact(implied, amountOut, amountIn),
	}, nil
}
