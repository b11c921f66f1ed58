package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewMarketPrice(t *testing.T) {
	base := OraclePrice{
		Price:      decimal.NewFromInt(200),
		Confidence: decimal.NewFromInt(1),
	}
	quote := OraclePrice{
		Price:      decimal.NewFromInt(100),
		Confidence: decimal.RequireFromString("0.5"),
	}

	mp := NewMarketPrice(base, quote)

	assert.True(t, mp.Mid.Equal(decimal.NewFromInt(2)))
	// high = 201 / 99.5, low = 199 / 100.5
	assert.True(t, mp.High.GreaterThan(mp.Mid))
	assert.True(t, mp.Low.LessThan(mp.Mid))
	assert.True(t, mp.High.Sub(decimal.RequireFromString("2.0201")).Abs().
		LessThan(decimal.RequireFromString("0.0001")))
	assert.True(t, mp.Low.Sub(decimal.RequireFromString("1.9801")).Abs().
		LessThan(decimal.RequireFromString("0.0001")))
}

func TestNewMarketPrice_Undefined(t *testing.T) {
	defined := OraclePrice{Price: decimal.NewFromInt(1)}

	assert.True(t, NewMarketPrice(OraclePrice{}, defined).IsZero())
	assert.True(t, NewMarketPrice(defined, OraclePrice{}).IsZero())
	assert.True(t, NewMarketPrice(
		OraclePrice{Price: decimal.NewFromInt(-1)}, defined,
	).IsZero())
}

func TestNewMarketPrice_WideConfidence(t *testing.T) {
	// Confidence wider than the price itself leaves the bounds undefined but
	// keeps the mid.
	base := OraclePrice{
		Price:      decimal.NewFromInt(2),
		Confidence: decimal.NewFromInt(3),
	}
	quote := OraclePrice{Price: decimal.NewFromInt(1)}

	mp := NewMarketPrice(base, quote)
	assert.False(t, mp.IsZero())
	assert.True(t, mp.Low.IsZero())
	assert.False(t, mp.hasBounds())
}

func TestMarketPricePick(t *testing.T) {
	mp := MarketPrice{
		Mid:  decimal.NewFromInt(2),
		Low:  decimal.RequireFromString("1.98"),
		High: decimal.RequireFromString("2.02"),
	}

	assert.True(t, mp.pick(SellBase, false).Equal(mp.Mid))
	assert.True(t, mp.pick(SellQuote, false).Equal(mp.Mid))
	assert.True(t, mp.pick(SellBase, true).Equal(mp.Low))
	assert.True(t, mp.pick(SellQuote, true).Equal(mp.High))

	noBounds := MarketPrice{Mid: decimal.NewFromInt(2)}
	assert.True(t, noBounds.pick(SellBase, true).Equal(noBounds.Mid))
}
