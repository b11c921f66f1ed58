package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing/formula"
)

// EmptyResult is returned when no quote is available, eg. the input amount
// or the oracle price is undefined.
func EmptyResult() *SwapResult {
	return &SwapResult{}
}

func zeroResult() *SwapResult {
	return &SwapResult{
		AmountIn:              "0",
		AmountOut:             "0",
		AmountOutWithSlippage: "0",
		Fee:                   "0",
		PriceImpact:           "0",
	}
}

// SwapOut quotes the output amount produced by selling amountIn of the from
// token. amountIn is a decimal string at human scale; an empty or
// non-numeric amount yields the empty result, zero yields the zero result
// and a negative amount fails with ErrInvalidAmount. A missing market price
// also yields the empty result, which callers display as "no quote
// available".
func SwapOut(
	pool PoolInfo, fromMint, toMint, amountIn string,
	maxSlippagePct float64, market MarketPrice,
) (*SwapResult, error) {
	amount, empty, err := parseAmount(amountIn)
	if err != nil {
		return nil, err
	}
	if empty {
		return EmptyResult(), nil
	}
	if amount.IsZero() {
		return zeroResult(), nil
	}

	direction, err := pool.DirectionFor(fromMint, toMint)
	if err != nil {
		return nil, err
	}
	if market.IsZero() {
		return EmptyResult(), nil
	}

	fromDecimals, toDecimals := pool.tradeDecimals(direction)
	amountInScaled := amount.Shift(int32(fromDecimals)).RoundFloor(0)
	if amountInScaled.IsZero() {
		return zeroResult(), nil
	}

	rawQuote, err := pool.invokeOutGivenIn(direction, amountInScaled, market)
	if err != nil {
		if errors.Is(err, formula.ErrInsufficientLiquidity) {
			res := zeroResult()
			res.AmountIn = amountInScaled.Shift(-int32(fromDecimals)).String()
			res.InsufficientLiquidity = true
			return res, nil
		}
		return nil, mapFormulaError(err)
	}

	grossOut := rawQuote.Amount.Shift(-int32(toDecimals))
	netOut, _ := mathutil.LessFee(grossOut, pool.Config.TradeFee)
	netOut = netOut.RoundFloor(int32(toDecimals))
	fee := grossOut.Sub(netOut)
	adminFee := fee.Mul(pool.Config.AdminTradeFee.Decimal())

	outWithSlippage := applySlippage(netOut, maxSlippagePct).
		RoundFloor(int32(toDecimals))

	sufficient, err := pool.checkTrade(
		direction, amountInScaled,
		grossOut.Sub(adminFee).Shift(int32(toDecimals)).RoundFloor(0),
		market,
	)
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		AmountIn:              amountInScaled.Shift(-int32(fromDecimals)).String(),
		AmountOut:             netOut.String(),
		AmountOutWithSlippage: outWithSlippage.String(),
		Fee:                   fee.String(),
		PriceImpact:           rawQuote.PriceImpact.String(),
		InsufficientLiquidity: !sufficient,
	}, nil
}

// SwapIn quotes the input amount required to receive amountOut of the to
// token after trade fees. The desired output is grossed up by the trade fee
// and run through the inverse kernel; the slippage bound scales the output
// down, so the caller owes at most the quoted input.
func SwapIn(
	pool PoolInfo, fromMint, toMint, amountOut string,
	maxSlippagePct float64, market MarketPrice,
) (*SwapResult, error) {
	amount, empty, err := parseAmount(amountOut)
	if err != nil {
		return nil, err
	}
	if empty {
		return EmptyResult(), nil
	}
	if amount.IsZero() {
		return zeroResult(), nil
	}

	direction, err := pool.DirectionFor(fromMint, toMint)
	if err != nil {
		return nil, err
	}
	if market.IsZero() {
		return nil, ErrOracleUnavailable
	}

	fromDecimals, toDecimals := pool.tradeDecimals(direction)

	grossOut, feeTotal := mathutil.PlusFee(amount, pool.Config.TradeFee)
	grossOutScaled := grossOut.Shift(int32(toDecimals)).RoundCeil(0)
	if grossOutScaled.IsZero() {
		return zeroResult(), nil
	}

	rawQuote, err := pool.invokeInGivenOut(direction, grossOutScaled, market)
	if err != nil {
		if errors.Is(err, formula.ErrInsufficientLiquidity) {
			res := zeroResult()
			res.AmountOut = amount.String()
			res.InsufficientLiquidity = true
			return res, nil
		}
		return nil, mapFormulaError(err)
	}

	amountInHuman := rawQuote.Amount.Shift(-int32(fromDecimals))
	outNet := amount.RoundFloor(int32(toDecimals))
	outWithSlippage := applySlippage(outNet, maxSlippagePct).
		RoundFloor(int32(toDecimals))

	adminFee := feeTotal.Mul(pool.Config.AdminTradeFee.Decimal())
	sufficient, err := pool.checkTrade(
		direction, rawQuote.Amount,
		grossOut.Sub(adminFee).Shift(int32(toDecimals)).RoundFloor(0),
		market,
	)
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		AmountIn:              amountInHuman.String(),
		AmountOut:             outNet.String(),
		AmountOutWithSlippage: outWithSlippage.String(),
		Fee:                   grossOut.Sub(outNet).String(),
		PriceImpact:           rawQuote.PriceImpact.String(),
		InsufficientLiquidity: !sufficient,
	}, nil
}

// parseAmount parses a human-scale decimal string. The second return value
// is true when the amount is absent or not numeric.
func parseAmount(s string) (decimal.Decimal, bool, error) {
	if s == "" {
		return decimal.Decimal{}, true, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, true, nil
	}
	if d.Sign() < 0 {
		return decimal.Decimal{}, false, ErrInvalidAmount
	}
	return d, false, nil
}

func applySlippage(amount decimal.Decimal, maxSlippagePct float64) decimal.Decimal {
	if maxSlippagePct <= 0 {
		return amount
	}
	factor := hundred.Sub(decimal.NewFromFloat(maxSlippagePct)).
		DivRound(hundred, mathutil.Precision)
	if factor.Sign() < 0 {
		return decimal.Zero
	}
	return amount.Mul(factor)
}

func mapFormulaError(err error) error {
	switch {
	case errors.Is(err, formula.ErrInternalInvariant):
		return ErrInternalInvariant
	case errors.Is(err, formula.ErrInvalidAmount):
		return ErrInvalidAmount
	default:
		return err
	}
}

func (p PoolInfo) tradeDecimals(direction SwapDirection) (from, to uint8) {
	if direction == SellBase {
		return p.MintBaseDecimals, p.MintQuoteDecimals
	}
	return p.MintQuoteDecimals, p.MintBaseDecimals
}

// normalOpts builds the normal-swap kernel inputs for the direction: the
// normalized reserves augmented by the virtual reserves, oriented in/out,
// with the picked market price normalized for decimals.
func (p PoolInfo) normalOpts(
	direction SwapDirection, market MarketPrice,
) (formula.NormalOpts, error) {
	picked := market.pick(direction, p.Config.EnableConfidenceInterval)
	normPrice := picked.Shift(p.decimalsDelta())

	normBase, normQuote, err := NormalizedReserves(p.State, normPrice)
	if err != nil {
		return formula.NormalOpts{}, err
	}
	virtBase, virtQuote, err := VirtualReserves(p.State, p.Config, normPrice)
	if err != nil {
		return formula.NormalOpts{}, err
	}
	baseReserve := normBase.Add(virtBase)
	quoteReserve := normQuote.Add(virtQuote)

	targetBase := mathutil.NewFromUint64(p.State.TargetBaseReserve)
	targetQuote := mathutil.NewFromUint64(p.State.TargetQuoteReserve)

	if direction == SellBase {
		return formula.NormalOpts{
			ReserveIn:        baseReserve,
			ReserveOut:       quoteReserve,
			TargetReserveIn:  targetBase,
			TargetReserveOut: targetQuote,
			MarketPrice:      normPrice,
		}, nil
	}

	invPrice, err := mathutil.Div(
		decimal.NewFromInt(1), normPrice, mathutil.RoundHalfEven,
	)
	if err != nil {
		return formula.NormalOpts{}, err
	}
	return formula.NormalOpts{
		ReserveIn:        quoteReserve,
		ReserveOut:       baseReserve,
		TargetReserveIn:  targetQuote,
		TargetReserveOut: targetBase,
		MarketPrice:      invPrice,
	}, nil
}

// stableOpts builds the stable-swap kernel inputs for the direction: the
// current reserves (never augmented) with the static stable price.
func (p PoolInfo) stableOpts(direction SwapDirection) (formula.StableOpts, error) {
	slope := mathutil.NewFromWad(p.Config.Slope)

	if direction == SellBase {
		return formula.StableOpts{
			ReserveIn:  mathutil.NewFromUint64(p.State.BaseReserve),
			ReserveOut: mathutil.NewFromUint64(p.State.QuoteReserve),
			Price:      p.stablePrice(),
			Slope:      slope,
		}, nil
	}
	invPrice, err := mathutil.Div(
		decimal.NewFromInt(1), p.stablePrice(), mathutil.RoundHalfEven,
	)
	if err != nil {
		return formula.StableOpts{}, err
	}
	return formula.StableOpts{
		ReserveIn:  mathutil.NewFromUint64(p.State.QuoteReserve),
		ReserveOut: mathutil.NewFromUint64(p.State.BaseReserve),
		Price:      invPrice,
		Slope:      slope,
	}, nil
}

func (p PoolInfo) invokeOutGivenIn(
	direction SwapDirection, amountInScaled decimal.Decimal, market MarketPrice,
) (*formula.SwapQuote, error) {
	switch p.SwapType {
	case NormalSwap:
		opts, err := p.normalOpts(direction, market)
		if err != nil {
			return nil, err
		}
		return formula.NewNormalSwapFormula().OutGivenIn(opts, amountInScaled)
	case StableSwap:
		opts, err := p.stableOpts(direction)
		if err != nil {
			return nil, err
		}
		return formula.NewStableSwapFormula().OutGivenIn(opts, amountInScaled)
	default:
		return nil, ErrInvalidSwapType
	}
}

func (p PoolInfo) invokeInGivenOut(
	direction SwapDirection, amountOutScaled decimal.Decimal, market MarketPrice,
) (*formula.SwapQuote, error) {
	switch p.SwapType {
	case NormalSwap:
		opts, err := p.normalOpts(direction, market)
		if err != nil {
			return nil, err
		}
		return formula.NewNormalSwapFormula().InGivenOut(opts, amountOutScaled)
	case StableSwap:
		opts, err := p.stableOpts(direction)
		if err != nil {
			return nil, err
		}
		return formula.NewStableSwapFormula().InGivenOut(opts, amountOutScaled)
	default:
		return nil, ErrInvalidSwapType
	}
}

// checkTrade runs the max-swap cap and the reserve-sufficiency predicate at
// the mid price.
func (p PoolInfo) checkTrade(
	direction SwapDirection, amountInScaled, amountOutScaled decimal.Decimal,
	market MarketPrice,
) (bool, error) {
	if p.Config.MaxSwapPct > 0 {
		inReserve := p.State.BaseReserve
		if direction == SellQuote {
			inReserve = p.State.QuoteReserve
		}
		maxIn := mathutil.NewFromUint64(inReserve).
			Mul(mathutil.NewFromUint64(p.Config.MaxSwapPct)).
			DivRound(hundred, mathutil.Precision)
		if amountInScaled.GreaterThan(maxIn) {
			return false, nil
		}
	}

	midNorm := market.Mid.Shift(p.decimalsDelta())
	return CheckSufficientReserves(
		p, direction, amountInScaled, amountOutScaled, midNorm,
	)
}
