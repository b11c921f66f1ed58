package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivRoundingModes(t *testing.T) {
	oneThird, err := Div(decimal.NewFromInt(1), decimal.NewFromInt(3), RoundFloor)
	require.NoError(t, err)
	oneThirdUp, err := Div(decimal.NewFromInt(1), decimal.NewFromInt(3), RoundCeil)
	require.NoError(t, err)

	assert.True(t, oneThirdUp.GreaterThan(oneThird))
	assert.True(t, oneThirdUp.Sub(oneThird).Equal(decimal.New(1, -Precision)))

	// 1/3 < ceil(1/3) and floor(1/3) < 1/3 at any finite precision.
	exact := decimal.NewFromInt(1).DivRound(decimal.NewFromInt(3), Precision+10)
	assert.True(t, oneThird.LessThan(exact))
	assert.True(t, oneThirdUp.GreaterThan(exact))
}

func TestDivExactQuotient(t *testing.T) {
	for _, mode := range []RoundingMode{RoundHalfEven, RoundCeil, RoundFloor} {
		got, err := Div(decimal.NewFromInt(10), decimal.NewFromInt(4), mode)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("2.5")))
	}
}

func TestDivNegativeOperands(t *testing.T) {
	up, err := Div(decimal.NewFromInt(-1), decimal.NewFromInt(3), RoundCeil)
	require.NoError(t, err)
	down, err := Div(decimal.NewFromInt(-1), decimal.NewFromInt(3), RoundFloor)
	require.NoError(t, err)

	assert.True(t, up.GreaterThan(down))
	assert.True(t, up.Sub(down).Equal(decimal.New(1, -Precision)))
}

func TestDivByZero(t *testing.T) {
	_, err := Div(decimal.NewFromInt(1), decimal.Zero, RoundHalfEven)
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestSqrt(t *testing.T) {
	root, err := Sqrt(decimal.NewFromInt(4), RoundFloor)
	require.NoError(t, err)
	assert.True(t, root.Equal(decimal.NewFromInt(2)))

	rootUp, err := Sqrt(decimal.NewFromInt(4), RoundCeil)
	require.NoError(t, err)
	assert.True(t, rootUp.Equal(decimal.NewFromInt(2)))

	two := decimal.NewFromInt(2)
	down, err := Sqrt(two, RoundFloor)
	require.NoError(t, err)
	up, err := Sqrt(two, RoundCeil)
	require.NoError(t, err)

	assert.True(t, down.Mul(down).LessThanOrEqual(two))
	assert.True(t, up.Mul(up).GreaterThanOrEqual(two))
	assert.True(t, up.Sub(down).LessThanOrEqual(decimal.New(1, -Precision)))
}

func TestSqrtNegative(t *testing.T) {
	_, err := Sqrt(decimal.NewFromInt(-1), RoundFloor)
	assert.Equal(t, ErrNegativeSqrt, err)
}

func TestPowInt(t *testing.T) {
	tests := []struct {
		name string
		base decimal.Decimal
		exp  uint64
		want decimal.Decimal
	}{
		{"zero exponent", decimal.RequireFromString("1.5"), 0, decimal.NewFromInt(1)},
		{"cube", decimal.RequireFromString("1.5"), 3, decimal.RequireFromString("3.375")},
		{"identity", decimal.NewFromInt(7), 1, decimal.NewFromInt(7)},
		{"square of fraction", decimal.RequireFromString("0.5"), 2, decimal.RequireFromString("0.25")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, PowInt(tt.base, tt.exp).Equal(tt.want))
		})
	}
}

func TestPowAddsEpsilon(t *testing.T) {
	// The float pow path always lands above the exact result.
	got := Pow(decimal.RequireFromString("0.5"), decimal.NewFromInt(1))
	assert.True(t, got.GreaterThan(decimal.RequireFromString("0.5")))
	assert.True(t, got.Sub(decimal.RequireFromString("0.5")).LessThan(decimal.New(1, -15)))
}

func TestRatio(t *testing.T) {
	got, err := Ratio(1, 2, RoundHalfEven)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.5")))
}

func TestNewFromWad(t *testing.T) {
	half := NewFromWad(500000000000000000)
	assert.True(t, half.Equal(decimal.RequireFromString("0.5")))

	one := NewFromWad(1000000000000000000)
	assert.True(t, one.Equal(decimal.NewFromInt(1)))
}
