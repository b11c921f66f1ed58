package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedReserves_AtTarget(t *testing.T) {
	state := newStablePool().State

	base, quote, err := NormalizedReserves(state, decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.True(t, base.Equal(decimal.New(1, 12)))
	assert.True(t, quote.Equal(decimal.New(1, 12)))
}

func TestNormalizedReserves_OffTarget(t *testing.T) {
	state := newNormalPool().State

	base, quote, err := NormalizedReserves(state, decimal.NewFromInt(2))
	require.NoError(t, err)

	// coef = (9.5e12*2 + 20.5e12) / (1e13*2 + 2e13) = 39.5/40 = 0.9875
	assert.True(t, base.Equal(decimal.RequireFromString("9875000000000")))
	assert.True(t, quote.Equal(decimal.RequireFromString("19750000000000")))
}

func TestVirtualReserves(t *testing.T) {
	pool := newNormalPool()

	base, quote, err := VirtualReserves(pool.State, pool.Config, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, base.IsZero())
	assert.True(t, quote.IsZero())

	pool.Config.VirtualReservePct = 10
	base, quote, err = VirtualReserves(pool.State, pool.Config, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.RequireFromString("987500000000")))
	assert.True(t, quote.Equal(decimal.RequireFromString("1975000000000")))
}

func TestCheckSufficientReserves(t *testing.T) {
	pool := newNormalPool()
	price := decimal.NewFromInt(2)

	ok, err := CheckSufficientReserves(
		pool, SellBase, decimal.New(1, 6), decimal.New(2, 6), price,
	)
	require.NoError(t, err)
	assert.True(t, ok)

	// Selling the whole base reserve pushes the quote side under half of its
	// normalized level.
	ok, err = CheckSufficientReserves(
		pool, SellBase, decimal.New(95, 11), decimal.New(97, 11), price,
	)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckSufficientReserves_DrainedReserve(t *testing.T) {
	pool := newNormalPool()

	ok, err := CheckSufficientReserves(
		pool, SellBase, decimal.New(95, 11), decimal.New(205, 11), decimal.NewFromInt(2),
	)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckSufficientReserves_InvalidDirection(t *testing.T) {
	pool := newNormalPool()

	_, err := CheckSufficientReserves(
		pool, SwapDirection(0), decimal.New(1, 6), decimal.New(2, 6), decimal.NewFromInt(2),
	)
	assert.Equal(t, ErrInvalidSwapDirection, err)
}
