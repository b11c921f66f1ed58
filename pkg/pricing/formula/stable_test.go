package formula

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStableOpts() StableOpts {
	return StableOpts{
		ReserveIn:  decimal.New(1, 12),
		ReserveOut: decimal.New(1, 12),
		Price:      decimal.NewFromInt(1),
		Slope:      decimal.RequireFromString("0.5"),
	}
}

func TestStableSwap_BalancedReservesAtBalance(t *testing.T) {
	f := NewStableSwapFormula()
	opts := newStableOpts()

	balancedIn, balancedOut, err := f.BalancedReserves(opts)
	require.NoError(t, err)

	// Equal reserves at price 1 are already balanced.
	assert.True(t, balancedIn.Equal(opts.ReserveIn))
	assert.True(t, balancedOut.Equal(opts.ReserveOut))
}

func TestStableSwap_BalancedReservesOffBalance(t *testing.T) {
	f := NewStableSwapFormula()
	opts := StableOpts{
		ReserveIn:  decimal.New(8, 11),
		ReserveOut: decimal.New(12, 11),
		Price:      decimal.NewFromInt(1),
		Slope:      decimal.RequireFromString("0.5"),
	}

	balancedIn, balancedOut, err := f.BalancedReserves(opts)
	require.NoError(t, err)

	// The balanced point sits between the two reserves and respects the
	// stable price.
	assert.True(t, balancedIn.GreaterThan(opts.ReserveIn))
	assert.True(t, balancedIn.LessThan(opts.ReserveOut))
	assert.True(t, balancedOut.Equal(balancedIn.Mul(opts.Price)))
}

func TestStableSwap_OutGivenIn(t *testing.T) {
	f := NewStableSwapFormula()
	opts := newStableOpts()
	amountIn := decimal.New(1, 8)

	quote, err := f.OutGivenIn(opts, amountIn)
	require.NoError(t, err)

	// A 100-unit trade on a million-unit stable pool returns almost the
	// full amount with negligible impact.
	assert.True(t, quote.Amount.GreaterThanOrEqual(decimal.NewFromInt(99500000)))
	assert.True(t, quote.Amount.LessThanOrEqual(decimal.NewFromInt(100000000)))
	assert.True(t, quote.PriceImpact.LessThan(decimal.RequireFromString("0.001")))
}

func TestStableSwap_FlatterSlopeGivesBetterPrice(t *testing.T) {
	f := NewStableSwapFormula()
	amountIn := decimal.New(1, 10)

	flat := newStableOpts()
	flat.Slope = decimal.RequireFromString("0.01")
	steep := newStableOpts()
	steep.Slope = decimal.NewFromInt(1)

	flatQuote, err := f.OutGivenIn(flat, amountIn)
	require.NoError(t, err)
	steepQuote, err := f.OutGivenIn(steep, amountIn)
	require.NoError(t, err)

	assert.True(t, flatQuote.Amount.GreaterThan(steepQuote.Amount))
}

func TestStableSwap_OutGivenInNeverExceedsInput(t *testing.T) {
	f := NewStableSwapFormula()
	opts := newStableOpts()

	// At price 1 on a balanced pool the curve never pays more than one to
	// one.
	for _, m := range []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.New(1, 6),
		decimal.New(1, 9),
		decimal.New(1, 12),
	} {
		quote, err := f.OutGivenIn(opts, m)
		require.NoError(t, err)
		assert.True(t, quote.Amount.LessThanOrEqual(m))
	}
}

func TestStableSwap_InGivenOut(t *testing.T) {
	f := NewStableSwapFormula()
	opts := newStableOpts()
	amountOut := decimal.New(1, 8)

	quote, err := f.InGivenOut(opts, amountOut)
	require.NoError(t, err)

	// The required input covers the output plus the curve premium.
	assert.True(t, quote.Amount.GreaterThanOrEqual(amountOut))
	assert.True(t, quote.Amount.LessThan(decimal.NewFromInt(100100000)))

	forward, err := f.OutGivenIn(opts, quote.Amount)
	require.NoError(t, err)
	assert.True(t, forward.Amount.GreaterThanOrEqual(amountOut))
}

func TestStableSwap_InGivenOutDrainsReserve(t *testing.T) {
	f := NewStableSwapFormula()
	opts := newStableOpts()

	_, err := f.InGivenOut(opts, opts.ReserveOut.Mul(decimal.NewFromInt(2)))
	assert.Equal(t, ErrInsufficientLiquidity, err)
}

func TestStableSwap_InvalidSlope(t *testing.T) {
	f := NewStableSwapFormula()

	for _, slope := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-1),
		decimal.RequireFromString("1.1"),
	} {
		opts := newStableOpts()
		opts.Slope = slope
		_, err := f.OutGivenIn(opts, decimal.NewFromInt(1))
		assert.Equal(t, ErrInvalidSlope, err)
	}
}
