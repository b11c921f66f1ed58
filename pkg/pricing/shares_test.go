package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawalFromShares_LowHighSplit(t *testing.T) {
	state := PoolState{
		BaseReserve:        800,
		QuoteReserve:       1200,
		TargetBaseReserve:  1000,
		TargetQuoteReserve: 1000,
		BaseSupply:         1000,
		QuoteSupply:        1000,
	}
	base := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}
	quote := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}

	amounts, err := WithdrawalFromShares(base, quote, state)
	require.NoError(t, err)

	// Base is the depleted side and pays pro rata from its reserve. Quote
	// pays the target-matching 80 plus a 10% share of the 400 excess.
	assert.Equal(t, "80", amounts.BaseAmount)
	assert.Equal(t, "120", amounts.QuoteAmount)
}

func TestWithdrawalFromShares_Balanced(t *testing.T) {
	state := PoolState{
		BaseReserve:        1000,
		QuoteReserve:       1000,
		TargetBaseReserve:  1000,
		TargetQuoteReserve: 1000,
		BaseSupply:         1000,
		QuoteSupply:        1000,
	}
	base := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}
	quote := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}

	amounts, err := WithdrawalFromShares(base, quote, state)
	require.NoError(t, err)

	assert.Equal(t, "100", amounts.BaseAmount)
	assert.Equal(t, "100", amounts.QuoteAmount)
}

func TestWithdrawalFromShares_QuoteDepleted(t *testing.T) {
	state := PoolState{
		BaseReserve:        1200,
		QuoteReserve:       800,
		TargetBaseReserve:  1000,
		TargetQuoteReserve: 1000,
		BaseSupply:         1000,
		QuoteSupply:        1000,
	}
	base := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}
	quote := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}

	amounts, err := WithdrawalFromShares(base, quote, state)
	require.NoError(t, err)

	assert.Equal(t, "120", amounts.BaseAmount)
	assert.Equal(t, "80", amounts.QuoteAmount)
}

func TestWithdrawalFromShares_InvalidState(t *testing.T) {
	base := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}
	quote := ShareSide{Share: 100, Decimals: 0, Price: decimal.NewFromInt(1)}

	_, err := WithdrawalFromShares(base, quote, PoolState{})
	assert.Equal(t, ErrInternalInvariant, err)
}

func TestMinSharesForDeposit_Stable(t *testing.T) {
	pool := newStablePool()
	one := decimal.NewFromInt(1)

	shares, err := MinSharesForDeposit(pool, "1", "1", MarketPrice{}, one)
	require.NoError(t, err)

	// Reserves at target, supply equal to reserves: one-to-one at pool scale.
	assert.Equal(t, "1000000", shares.MinBaseShare)
	assert.Equal(t, "1000000", shares.MinQuoteShare)

	discounted, err := MinSharesForDeposit(
		pool, "1", "1", MarketPrice{}, decimal.RequireFromString("0.99"),
	)
	require.NoError(t, err)
	assert.Equal(t, "990000", discounted.MinBaseShare)
	assert.Equal(t, "990000", discounted.MinQuoteShare)
}

func TestMinSharesForDeposit_Normal(t *testing.T) {
	pool := newNormalPool()

	shares, err := MinSharesForDeposit(pool, "1", "0", marketAt("2"), decimal.NewFromInt(1))
	require.NoError(t, err)

	// Base normalized reserve sits below the supply, so a unit deposit mints
	// slightly more than a unit of shares.
	minted := decimal.RequireFromString(shares.MinBaseShare)
	assert.True(t, minted.GreaterThan(decimal.New(1, 6)))
	assert.True(t, minted.LessThan(decimal.RequireFromString("1020000")))
	assert.Equal(t, "0", shares.MinQuoteShare)
}

func TestMinSharesForDeposit_Bootstrap(t *testing.T) {
	pool := newStablePool()
	pool.State.BaseSupply = 0
	pool.State.BaseReserve = 0

	shares, err := MinSharesForDeposit(pool, "1", "0", MarketPrice{}, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "1000000", shares.MinBaseShare)
}

func TestMinSharesForDeposit_Invalid(t *testing.T) {
	pool := newStablePool()
	one := decimal.NewFromInt(1)

	_, err := MinSharesForDeposit(pool, "-1", "1", MarketPrice{}, one)
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = MinSharesForDeposit(pool, "1", "1", MarketPrice{}, decimal.Zero)
	assert.Equal(t, ErrInvalidAmount, err)

	normal := newNormalPool()
	_, err = MinSharesForDeposit(normal, "1", "1", MarketPrice{}, one)
	assert.Equal(t, ErrOracleUnavailable, err)
}
