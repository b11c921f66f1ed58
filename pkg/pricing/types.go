// Package pricing is the quoting core of the oracle-anchored AMM. It is
// stateless and side-effect free: entry points receive a pool descriptor, a
// token pair, amounts and a market price triple, and deterministically return
// a result record. It never performs I/O, logging or retries.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

// SwapType tags the curve family of a pool.
type SwapType int

const (
	// NormalSwap is the general logarithmic curve.
	NormalSwap SwapType = iota + 1
	// StableSwap is the flat curve for same-value token pairs.
	StableSwap
)

func (t SwapType) String() string {
	switch t {
	case NormalSwap:
		return "normal"
	case StableSwap:
		return "stable"
	default:
		return "unknown"
	}
}

// SwapDirection tags which side of the pool the trader sells.
type SwapDirection int

const (
	// SellBase ...
	SellBase SwapDirection = iota + 1
	// SellQuote ...
	SellQuote
)

func (d SwapDirection) String() string {
	switch d {
	case SellBase:
		return "sell-base"
	case SellQuote:
		return "sell-quote"
	default:
		return "unknown"
	}
}

// PoolState holds the integer reserves and share supplies of a pool at the
// on-chain scale.
type PoolState struct {
	BaseReserve        uint64
	QuoteReserve       uint64
	TargetBaseReserve  uint64
	TargetQuoteReserve uint64
	BaseSupply         uint64
	QuoteSupply        uint64
}

// SwapConfig holds the pool fee and safety parameters. The slope is stored
// scaled by WAD (10^18). An absent virtual reserve percentage is zero.
type SwapConfig struct {
	Slope                    uint64
	TradeFee                 mathutil.Fraction
	AdminTradeFee            mathutil.Fraction
	WithdrawFee              mathutil.Fraction
	AdminWithdrawFee         mathutil.Fraction
	MinReserveLimitPct       uint64
	VirtualReservePct        uint64
	MaxSwapPct               uint64
	EnableConfidenceInterval bool
}

// PoolInfo is the immutable pool descriptor the quote engine consumes.
type PoolInfo struct {
	SwapType          SwapType
	ConfigKey         string
	MintBase          string
	MintQuote         string
	MintBaseDecimals  uint8
	MintQuoteDecimals uint8
	State             PoolState
	Config            SwapConfig
}

// DirectionFor resolves the swap direction from the mints of the traded
// pair against the pool's base and quote mints.
func (p PoolInfo) DirectionFor(fromMint, toMint string) (SwapDirection, error) {
	switch {
	case fromMint == p.MintBase && toMint == p.MintQuote:
		return SellBase, nil
	case fromMint == p.MintQuote && toMint == p.MintBase:
		return SellQuote, nil
	default:
		return 0, ErrInvalidTokenPair
	}
}

// decimalsDelta returns quote decimals minus base decimals.
func (p PoolInfo) decimalsDelta() int32 {
	return int32(p.MintQuoteDecimals) - int32(p.MintBaseDecimals)
}

// stablePrice is the static price bridging the two decimal scales, the
// value of one base unit in quote units when both tokens track the same
// value.
func (p PoolInfo) stablePrice() decimal.Decimal {
	return mathutil.Exp10(p.decimalsDelta())
}

// SwapResult is the outcome of a quote. All numeric fields are decimal
// strings at human scale to avoid precision loss across boundaries.
type SwapResult struct {
	AmountIn              string
	AmountOut             string
	AmountOutWithSlippage string
	Fee                   string
	PriceImpact           string
	InsufficientLiquidity bool
}

// WithdrawalAmounts is the per-token split of a withdrawal by shares, as
// decimal strings at human scale.
type WithdrawalAmounts struct {
	BaseAmount  string
	QuoteAmount string
}

// DepositShares is the slippage-protected lower bound of shares minted for
// a deposit.
type DepositShares struct {
	MinBaseShare  string
	MinQuoteShare string
}
