package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

// ShareSide describes one side of a withdrawal or deposit: the share amount
// being redeemed or minted, the token decimals and the oracle price of the
// token at human scale.
type ShareSide struct {
	Share    uint64
	Decimals uint8
	Price    decimal.Decimal
}

type sideState struct {
	share    decimal.Decimal
	supply   decimal.Decimal
	reserve  decimal.Decimal
	target   decimal.Decimal
	decimals uint8
	// price per pool unit, ie. the human price shifted by the decimals
	unitPrice decimal.Decimal
}

// WithdrawalFromShares splits a withdrawal of (baseShare, quoteShare) into
// per-token amounts. The side whose reserve sits lowest relative to its
// target pays out pro rata from its reserve; the other side pays the
// matching target-ratio amount plus a residual share of the excess valued at
// the share/TVL ratio.
func WithdrawalFromShares(
	base, quote ShareSide, state PoolState,
) (*WithdrawalAmounts, error) {
	if state.TargetBaseReserve == 0 || state.TargetQuoteReserve == 0 {
		return nil, ErrInternalInvariant
	}
	if state.BaseSupply == 0 || state.QuoteSupply == 0 {
		return nil, ErrInternalInvariant
	}

	baseSide := sideState{
		share:     mathutil.NewFromUint64(base.Share),
		supply:    mathutil.NewFromUint64(state.BaseSupply),
		reserve:   mathutil.NewFromUint64(state.BaseReserve),
		target:    mathutil.NewFromUint64(state.TargetBaseReserve),
		decimals:  base.Decimals,
		unitPrice: base.Price.Shift(-int32(base.Decimals)),
	}
	quoteSide := sideState{
		share:     mathutil.NewFromUint64(quote.Share),
		supply:    mathutil.NewFromUint64(state.QuoteSupply),
		reserve:   mathutil.NewFromUint64(state.QuoteReserve),
		target:    mathutil.NewFromUint64(state.TargetQuoteReserve),
		decimals:  quote.Decimals,
		unitPrice: quote.Price.Shift(-int32(quote.Decimals)),
	}

	baseRatio, err := mathutil.Div(baseSide.reserve, baseSide.target, mathutil.RoundHalfEven)
	if err != nil {
		return nil, err
	}
	quoteRatio, err := mathutil.Div(quoteSide.reserve, quoteSide.target, mathutil.RoundHalfEven)
	if err != nil {
		return nil, err
	}

	low, high := baseSide, quoteSide
	baseIsLow := baseRatio.LessThanOrEqual(quoteRatio)
	if !baseIsLow {
		low, high = quoteSide, baseSide
	}

	lowAmount, err := mathutil.Div(
		low.reserve.Mul(low.share), low.supply, mathutil.RoundFloor,
	)
	if err != nil {
		return nil, err
	}

	highBase, err := mathutil.Div(
		low.reserve.Mul(high.target), low.target, mathutil.RoundHalfEven,
	)
	if err != nil {
		return nil, err
	}
	highAmountBase, err := mathutil.Div(
		highBase.Mul(high.share), high.supply, mathutil.RoundFloor,
	)
	if err != nil {
		return nil, err
	}

	shareTvlRatio, err := mathutil.Div(
		low.share.Mul(low.unitPrice).Add(high.share.Mul(high.unitPrice)),
		low.supply.Mul(low.unitPrice).Add(high.supply.Mul(high.unitPrice)),
		mathutil.RoundHalfEven,
	)
	if err != nil {
		return nil, err
	}
	highAmountResidual := high.reserve.Sub(highBase).Mul(shareTvlRatio)
	highAmount := highAmountBase.Add(highAmountResidual)

	lowStr := lowAmount.Shift(-int32(low.decimals)).
		RoundFloor(int32(low.decimals)).String()
	highStr := highAmount.Shift(-int32(high.decimals)).
		RoundFloor(int32(high.decimals)).String()

	if baseIsLow {
		return &WithdrawalAmounts{BaseAmount: lowStr, QuoteAmount: highStr}, nil
	}
	return &WithdrawalAmounts{BaseAmount: highStr, QuoteAmount: lowStr}, nil
}

// MinSharesForDeposit computes the slippage-protected lower bound of shares
// minted for depositing (baseAmount, quoteAmount), both decimal strings at
// human scale. Shares are granted pro rata against the normalized reserves:
// at the market price for normal-swap pools, at the static stable price for
// stable-swap pools, so that a balanced stable deposit preserves the ratio
// exactly. minCoefficient in (0, 1] scales the bound down.
func MinSharesForDeposit(
	pool PoolInfo, baseAmount, quoteAmount string,
	market MarketPrice, minCoefficient decimal.Decimal,
) (*DepositShares, error) {
	baseIn, err := decimal.NewFromString(baseAmount)
	if err != nil || baseIn.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	quoteIn, err := decimal.NewFromString(quoteAmount)
	if err != nil || quoteIn.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if minCoefficient.Sign() <= 0 || minCoefficient.GreaterThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidAmount
	}

	var price decimal.Decimal
	switch pool.SwapType {
	case NormalSwap:
		if market.IsZero() {
			return nil, ErrOracleUnavailable
		}
		price = market.Mid.Shift(pool.decimalsDelta())
	case StableSwap:
		price = pool.stablePrice()
	default:
		return nil, ErrInvalidSwapType
	}

	normBase, normQuote, err := NormalizedReserves(pool.State, price)
	if err != nil {
		return nil, err
	}

	baseScaled := baseIn.Shift(int32(pool.MintBaseDecimals))
	quoteScaled := quoteIn.Shift(int32(pool.MintQuoteDecimals))

	baseShare, err := shareForAmount(
		baseScaled, normBase, mathutil.NewFromUint64(pool.State.BaseSupply),
	)
	if err != nil {
		return nil, err
	}
	quoteShare, err := shareForAmount(
		quoteScaled, normQuote, mathutil.NewFromUint64(pool.State.QuoteSupply),
	)
	if err != nil {
		return nil, err
	}

	return &DepositShares{
		MinBaseShare:  baseShare.Mul(minCoefficient).RoundFloor(0).String(),
		MinQuoteShare: quoteShare.Mul(minCoefficient).RoundFloor(0).String(),
	}, nil
}

func shareForAmount(amount, reserve, supply decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	// Bootstrap: the first deposit mints shares one to one.
	if supply.IsZero() || reserve.IsZero() {
		return amount, nil
	}
	return mathutil.Div(amount.Mul(supply), reserve, mathutil.RoundFloor)
}
